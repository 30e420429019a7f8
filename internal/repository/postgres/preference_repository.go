package postgres

import (
	"comicSnap/business/preference"
	"comicSnap/domain"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

var _ preference.PreferenceRepository = (*PreferenceRepository)(nil)

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

// GetPreferences returns comic id -> weight for the user's explicit preferences.
func (r *PreferenceRepository) GetPreferences(ctx context.Context, userID uint) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var prefs []domain.Preference
	err := r.DB.WithContext(ctx).
		Select("comic_id, weight").
		Where("user_id = ?", userID).
		Find(&prefs).Error
	if err != nil {
		return nil, storeError("query preferences", err)
	}

	out := make(map[string]float64, len(prefs))
	for _, p := range prefs {
		out[p.ComicID] = p.Weight
	}
	return out, nil
}

func (r *PreferenceRepository) CreatePreference(ctx context.Context, pref *domain.Preference) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(pref).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create preference: %w", err)
	}

	return nil
}

func (r *PreferenceRepository) HasPreference(ctx context.Context, userID uint, comicID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Preference{}).
		Where("user_id = ? AND comic_id = ?", userID, comicID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check preference: %w", err)
	}

	return count > 0, nil
}

func (r *PreferenceRepository) ListPreferredComicIDs(ctx context.Context, userID uint) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []string
	err := r.DB.WithContext(ctx).
		Model(&domain.Preference{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("comic_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}

	return ids, nil
}
