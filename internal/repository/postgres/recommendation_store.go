package postgres

import (
	"comicSnap/business/recommendation"

	"gorm.io/gorm"
)

// RecommendationStore serves the engine's reads from the rating and
// preference tables.
type RecommendationStore struct {
	*RatingRepository
	*PreferenceRepository
}

var _ recommendation.RatingStore = (*RecommendationStore)(nil)

func NewRecommendationStore(db *gorm.DB) *RecommendationStore {
	return &RecommendationStore{
		RatingRepository:     NewRatingRepository(db),
		PreferenceRepository: NewPreferenceRepository(db),
	}
}
