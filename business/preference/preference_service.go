package preference

import (
	"comicSnap/domain"
	"comicSnap/pkg/logger"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// PreferenceRepository contract interface
type PreferenceRepository interface {
	CreatePreference(ctx context.Context, pref *domain.Preference) error
	HasPreference(ctx context.Context, userID uint, comicID string) (bool, error)
	ListPreferredComicIDs(ctx context.Context, userID uint) ([]string, error)
}

var (
	ErrInvalidInput     = errors.New("invalid preference input")
	ErrAlreadyPreferred = errors.New("comic already in preferences")
)

type PreferenceInput struct {
	ComicID string   `json:"comic_id"`
	Genre   string   `json:"genre"`
	Weight  *float64 `json:"weight"`
}

type preferenceService struct {
	repo PreferenceRepository
}

func NewPreferenceService(repo PreferenceRepository) *preferenceService {
	return &preferenceService{repo: repo}
}

// AddPreference stores an explicit preference. Weight defaults to 1.0.
func (s *preferenceService) AddPreference(ctx context.Context, userID uint, in PreferenceInput) (domain.Preference, error) {
	if err := ctx.Err(); err != nil {
		return domain.Preference{}, fmt.Errorf("context error: %w", err)
	}

	comicID := strings.TrimSpace(in.ComicID)
	if comicID == "" {
		return domain.Preference{}, fmt.Errorf("%w: comic id is required", ErrInvalidInput)
	}

	weight := domain.DefaultPreferenceWeight
	if in.Weight != nil {
		weight = *in.Weight
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return domain.Preference{}, fmt.Errorf("%w: weight must be a non-negative number", ErrInvalidInput)
	}

	genre := strings.TrimSpace(in.Genre)
	if genre == "" {
		genre = domain.DefaultPreferenceGenre
	}

	exists, err := s.repo.HasPreference(ctx, userID, comicID)
	if err != nil {
		logger.Error("Failed to check preference", err, "user_id", userID, "comic_id", comicID)
		return domain.Preference{}, err
	}
	if exists {
		return domain.Preference{}, ErrAlreadyPreferred
	}

	pref := domain.Preference{
		UserID:    userID,
		ComicID:   comicID,
		Genre:     genre,
		Weight:    weight,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreatePreference(ctx, &pref); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.Preference{}, ErrAlreadyPreferred
		}
		logger.Error("Failed to create preference", err, "user_id", userID, "comic_id", comicID)
		return domain.Preference{}, err
	}

	return pref, nil
}

func (s *preferenceService) ListPreferredComicIDs(ctx context.Context, userID uint) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ids, err := s.repo.ListPreferredComicIDs(ctx, userID)
	if err != nil {
		logger.Error("Failed to list preferences", err, "user_id", userID)
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
