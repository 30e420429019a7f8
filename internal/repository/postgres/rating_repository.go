package postgres

import (
	"comicSnap/business/reading"
	"comicSnap/domain"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

var _ reading.ReadingRepository = (*RatingRepository)(nil)

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// storeError marks err as a store failure so callers can match
// domain.ErrStoreUnavailable.
func storeError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// ---- Reads used by the recommendation engine ----

func (r *RatingRepository) GetTopPublishers(ctx context.Context, userID uint, n int) ([]domain.PublisherAffinity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if n <= 0 {
		return []domain.PublisherAffinity{}, nil
	}

	var rows []domain.PublisherAffinity
	err := r.DB.WithContext(ctx).
		Table("comic_ratings AS r").
		Select("c.publisher AS publisher, AVG(r.rating) AS mean_rating").
		Joins("JOIN comics c ON c.id = r.comic_id").
		Where("r.user_id = ? AND c.publisher IS NOT NULL AND TRIM(c.publisher) <> ''", userID).
		Group("c.publisher").
		Order("mean_rating DESC, c.publisher ASC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, storeError("query top publishers", err)
	}

	return rows, nil
}

func (r *RatingRepository) GetConsumedItems(ctx context.Context, userID uint) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []string
	err := r.DB.WithContext(ctx).
		Model(&domain.Rating{}).
		Where("user_id = ?", userID).
		Pluck("comic_id", &ids).Error
	if err != nil {
		return nil, storeError("query consumed comics", err)
	}

	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *RatingRepository) GetRatings(ctx context.Context, userID uint) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.RatedItem
	err := r.DB.WithContext(ctx).
		Model(&domain.Rating{}).
		Select("comic_id, rating").
		Where("user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, storeError("query ratings", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.ComicID] = row.Rating
	}
	return out, nil
}

func (r *RatingRepository) GetOtherUserIDs(ctx context.Context, excluding uint) ([]uint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&domain.Rating{}).
		Distinct("user_id").
		Where("user_id <> ?", excluding).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, storeError("query peer users", err)
	}

	return ids, nil
}

func (r *RatingRepository) GetHighRatings(ctx context.Context, userID uint, threshold int) ([]domain.RatedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.RatedItem
	err := r.DB.WithContext(ctx).
		Model(&domain.Rating{}).
		Select("comic_id, rating").
		Where("user_id = ? AND rating >= ?", userID, threshold).
		Order("comic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeError("query high ratings", err)
	}

	return rows, nil
}

// ---- Reading log ----

// SaveReading stores the comic metadata (kept as-is if already known) and
// the user's rating in one transaction.
func (r *RatingRepository) SaveReading(ctx context.Context, comic domain.Comic, rating domain.Rating) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if rating.ReadAt.IsZero() {
		rating.ReadAt = time.Now()
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&comic).Error; err != nil {
			return fmt.Errorf("failed to save comic: %w", err)
		}

		if err := tx.Create(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyExists
			}
			return fmt.Errorf("failed to save rating: %w", err)
		}
		return nil
	})
}

func (r *RatingRepository) HasRating(ctx context.Context, userID uint, comicID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Rating{}).
		Where("user_id = ? AND comic_id = ?", userID, comicID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check rating: %w", err)
	}

	return count > 0, nil
}

func (r *RatingRepository) ListReadComics(ctx context.Context, userID uint) ([]domain.ReadComic, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ReadComic
	err := r.DB.WithContext(ctx).
		Table("comic_ratings AS r").
		Select("c.id, c.title, c.cover_url, c.publisher, c.year, r.rating, r.read_at").
		Joins("JOIN comics c ON c.id = r.comic_id").
		Where("r.user_id = ?", userID).
		Order("r.read_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list read comics: %w", err)
	}

	return rows, nil
}
