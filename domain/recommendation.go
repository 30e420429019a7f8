package domain

// PublisherAffinity is the mean rating a user gave to comics of one publisher.
type PublisherAffinity struct {
	Publisher  string  `json:"publisher" gorm:"column:publisher"`
	MeanRating float64 `json:"mean_rating" gorm:"column:mean_rating"`
}

// UserProfile is the per-request view of a user's taste.
type UserProfile struct {
	ExplicitPreferences map[string]float64
	ConsumedItems       map[string]struct{}
	TopPublishers       []PublisherAffinity
}

type RecommendationEntry struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Cover     string  `json:"cover"`
	Publisher string  `json:"publisher"`
	Year      string  `json:"year"`
	Score     float64 `json:"score"`
}
