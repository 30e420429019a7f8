package domain

import "time"

// CREATE TABLE public.user_preferences (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id     BIGINT NOT NULL,
//     comic_id    TEXT NOT NULL,
//     genre       TEXT NOT NULL DEFAULT 'unspecified',
//     weight      DOUBLE PRECISION NOT NULL CHECK (weight >= 0),
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, comic_id)
// );

const (
	DefaultPreferenceWeight = 1.0
	DefaultPreferenceGenre  = "unspecified"
)

type Preference struct {
	ID        uint      `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_pref_user_comic"`
	ComicID   string    `json:"comic_id" gorm:"column:comic_id;type:text;not null;uniqueIndex:idx_pref_user_comic"`
	Genre     string    `json:"genre" gorm:"column:genre;type:text;not null;default:unspecified"`
	Weight    float64   `json:"weight" gorm:"column:weight;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Preference) TableName() string {
	return "user_preferences"
}
