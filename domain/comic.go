package domain

import (
	"strings"
	"time"
)

// CREATE TABLE public.comics (
//     id           TEXT PRIMARY KEY,
//     title        TEXT NOT NULL,
//     cover_url    TEXT,
//     publisher    TEXT,
//     year         TEXT,
//     description  TEXT,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

const (
	DefaultCoverURL    = "/static/comic-placeholder.png"
	UnknownYear        = "N/D"
	UnknownDescription = "N/A"
	UnknownPublisher   = "N/A"
)

type Comic struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id;type:text"`
	Title       string    `json:"title" gorm:"column:title;type:text;not null"`
	CoverURL    string    `json:"cover_url" gorm:"column:cover_url;type:text"`
	Publisher   string    `json:"publisher" gorm:"column:publisher;type:text"`
	Year        string    `json:"year" gorm:"column:year;type:text"`
	Description string    `json:"description" gorm:"column:description;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Comic) TableName() string {
	return "comics"
}

// CandidateItem is a comic discovered in the external catalog. Year, Description
// and CoverURL are always filled (placeholders when the catalog has none);
// Publisher is left empty when unknown.
type CandidateItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Year        string `json:"year"`
	CoverURL    string `json:"cover_url"`
	Description string `json:"description"`
}

// UsableTitle rejects blank titles and the literal "null" some catalog
// records carry.
func UsableTitle(title string) bool {
	t := strings.TrimSpace(title)
	return t != "" && !strings.EqualFold(t, "null")
}
