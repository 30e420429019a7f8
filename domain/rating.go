package domain

import "time"

// CREATE TABLE public.comic_ratings (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     comic_id   TEXT NOT NULL REFERENCES comics(id),
//     rating     SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
//     read_at    TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, comic_id)
// );

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID      uint      `json:"id" gorm:"primaryKey;column:id;autoIncrement"`
	UserID  uint      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_rating_user_comic"`
	ComicID string    `json:"comic_id" gorm:"column:comic_id;type:text;not null;uniqueIndex:idx_rating_user_comic"`
	Rating  int       `json:"rating" gorm:"column:rating;not null;check:rating BETWEEN 1 AND 5"`
	ReadAt  time.Time `json:"read_at" gorm:"column:read_at"`
}

func (Rating) TableName() string {
	return "comic_ratings"
}

// RatedItem is one (comic, rating) pair of a single user.
type RatedItem struct {
	ComicID string `json:"comic_id" gorm:"column:comic_id"`
	Rating  int    `json:"rating" gorm:"column:rating"`
}

// ReadComic is a comic from the user's reading log together with the rating given.
type ReadComic struct {
	ID        string    `json:"id" gorm:"column:id"`
	Title     string    `json:"title" gorm:"column:title"`
	CoverURL  string    `json:"cover_url" gorm:"column:cover_url"`
	Publisher string    `json:"publisher" gorm:"column:publisher"`
	Year      string    `json:"year" gorm:"column:year"`
	Rating    int       `json:"rating" gorm:"column:rating"`
	ReadAt    time.Time `json:"read_at" gorm:"column:read_at"`
}
