package reading

import (
	"comicSnap/domain"
	"comicSnap/pkg/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ReadingRepository contract interface
type ReadingRepository interface {
	SaveReading(ctx context.Context, comic domain.Comic, rating domain.Rating) error
	HasRating(ctx context.Context, userID uint, comicID string) (bool, error)
	ListReadComics(ctx context.Context, userID uint) ([]domain.ReadComic, error)
}

var (
	ErrInvalidInput = errors.New("invalid reading input")
	ErrAlreadyRead  = errors.New("comic already marked as read")
)

type ReadInput struct {
	ComicID     string `json:"comic_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	CoverURL    string `json:"cover_url"`
	Publisher   string `json:"publisher"`
	Year        string `json:"year"`
	Description string `json:"description"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
}

type readingService struct {
	repo     ReadingRepository
	validate *validator.Validate
}

func NewReadingService(repo ReadingRepository, validate *validator.Validate) *readingService {
	return &readingService{
		repo:     repo,
		validate: validate,
	}
}

// MarkAsRead records that the user read a comic and how they rated it.
func (s *readingService) MarkAsRead(ctx context.Context, userID uint, in ReadInput) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	in.ComicID = strings.TrimSpace(in.ComicID)
	in.Title = strings.TrimSpace(in.Title)

	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid reading input", err, "user_id", userID)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	read, err := s.repo.HasRating(ctx, userID, in.ComicID)
	if err != nil {
		logger.Error("Failed to check reading", err, "user_id", userID, "comic_id", in.ComicID)
		return err
	}
	if read {
		return ErrAlreadyRead
	}

	comic := domain.Comic{
		ID:          in.ComicID,
		Title:       in.Title,
		CoverURL:    orDefault(in.CoverURL, domain.DefaultCoverURL),
		Publisher:   strings.TrimSpace(in.Publisher),
		Year:        orDefault(in.Year, domain.UnknownYear),
		Description: orDefault(in.Description, domain.UnknownDescription),
		CreatedAt:   time.Now(),
	}
	rating := domain.Rating{
		UserID:  userID,
		ComicID: in.ComicID,
		Rating:  in.Rating,
		ReadAt:  time.Now(),
	}

	if err := s.repo.SaveReading(ctx, comic, rating); err != nil {
		// concurrent request won the insert
		if errors.Is(err, domain.ErrAlreadyExists) {
			return ErrAlreadyRead
		}
		logger.Error("Failed to save reading", err, "user_id", userID, "comic_id", in.ComicID)
		return err
	}

	logger.Info("comic_marked_read", "user_id", userID, "comic_id", in.ComicID, "rating", in.Rating)
	return nil
}

func (s *readingService) IsRead(ctx context.Context, userID uint, comicID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	comicID = strings.TrimSpace(comicID)
	if comicID == "" {
		return false, fmt.Errorf("%w: comic id is required", ErrInvalidInput)
	}

	return s.repo.HasRating(ctx, userID, comicID)
}

// ListRead returns the user's reading log, newest first.
func (s *readingService) ListRead(ctx context.Context, userID uint) ([]domain.ReadComic, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	comics, err := s.repo.ListReadComics(ctx, userID)
	if err != nil {
		logger.Error("Failed to list read comics", err, "user_id", userID)
		return nil, err
	}

	for i := range comics {
		comics[i].CoverURL = orDefault(comics[i].CoverURL, domain.DefaultCoverURL)
		comics[i].Year = orDefault(comics[i].Year, domain.UnknownYear)
	}
	if comics == nil {
		comics = []domain.ReadComic{}
	}
	return comics, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
