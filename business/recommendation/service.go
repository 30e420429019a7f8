package recommendation

import (
	"comicSnap/domain"
	"comicSnap/pkg/logger"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ---- Repository interfaces ----

// RatingStore is the read side of ratings, preferences and comic metadata.
type RatingStore interface {
	GetPreferences(ctx context.Context, userID uint) (map[string]float64, error)
	GetTopPublishers(ctx context.Context, userID uint, n int) ([]domain.PublisherAffinity, error)
	GetConsumedItems(ctx context.Context, userID uint) (map[string]struct{}, error)
	GetRatings(ctx context.Context, userID uint) (map[string]int, error)
	GetOtherUserIDs(ctx context.Context, excluding uint) ([]uint, error)
	GetHighRatings(ctx context.Context, userID uint, threshold int) ([]domain.RatedItem, error)
}

// CatalogGateway searches the external comic catalog. An empty result is not
// an error.
type CatalogGateway interface {
	Search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error)
}

// ---- Service ----

// Service blends explicit preferences, publisher affinity and collaborative
// similarity into a ranked list of catalog comics. It holds no mutable state
// and is safe for concurrent use.
type Service struct {
	store   RatingStore
	catalog CatalogGateway
	cfg     Config
}

func NewService(store RatingStore, catalog CatalogGateway, cfg Config) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		cfg:     cfg.withDefaults(),
	}
}

// Recommend never fails: any problem yields an empty list.
func (s *Service) Recommend(ctx context.Context, userID uint, limit int) []domain.RecommendationEntry {
	return s.GenerateRecommendations(ctx, userID, limit).Entries
}

// GenerateRecommendations runs one best-effort pass and reports why the list
// may be empty or incomplete.
func (s *Service) GenerateRecommendations(ctx context.Context, userID uint, limit int) (res Result) {
	start := time.Now()
	tid := TraceIDFromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("recommendation_panic",
				"trace_id", tid,
				"user_id", userID,
				"panic", fmt.Sprint(r),
			)
			res = failed(FailureInternal, fmt.Errorf("recommendation panic: %v", r), nil)
		}
		RecommendationRequestsTotal.WithLabelValues(string(res.Failure)).Inc()
		RecommendationDuration.Observe(time.Since(start).Seconds())
	}()

	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	if err := ctx.Err(); err != nil {
		return failed(FailureCanceled, fmt.Errorf("context error: %w", err), nil)
	}

	profile, collab, degraded, err := s.buildProfile(ctx, userID)
	if err != nil {
		if ctx.Err() != nil {
			return failed(FailureCanceled, err, degraded)
		}
		logger.Error("recommendation_failed",
			"trace_id", tid,
			"user_id", userID,
			"reason", string(FailureStoreUnavailable),
			"error", err,
		)
		return failed(FailureStoreUnavailable, err, degraded)
	}

	query := buildCatalogQuery(profile.TopPublishers, s.cfg.FallbackQuery)

	candidates, err := s.searchCatalog(ctx, query)
	if err != nil {
		reason := catalogFailure(err)
		if ctx.Err() != nil {
			reason = FailureCanceled
		}
		logger.Warn("recommendation_catalog_failed",
			"trace_id", tid,
			"user_id", userID,
			"query", query,
			"reason", string(reason),
			"error", err,
		)
		res = failed(reason, err, degraded)
		res.Query = query
		return res
	}

	entries := scoreCandidates(profile, collab, candidates, limit)

	logger.Debug("recommendation_generated",
		"trace_id", tid,
		"user_id", userID,
		"query", query,
		"candidates", len(candidates),
		"returned", len(entries),
		"collab_items", len(collab),
		slog.Any("degraded", degraded),
	)

	return Result{
		Entries:  entries,
		Failure:  FailureNone,
		Degraded: degraded,
		Query:    query,
	}
}

// buildProfile gathers the four independent inputs concurrently. Preferences,
// top publishers and collaborative scores fall back to empty on error and are
// named in degraded; consumed items are required, so their failure is returned.
func (s *Service) buildProfile(ctx context.Context, userID uint) (domain.UserProfile, map[string]float64, []string, error) {
	var (
		prefs    map[string]float64
		consumed map[string]struct{}
		pubs     []domain.PublisherAffinity
		collab   map[string]float64

		prefsErr, consumedErr, pubsErr, collabErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		prefs, prefsErr = s.store.GetPreferences(gctx, userID)
		return nil
	})
	g.Go(func() error {
		consumed, consumedErr = s.store.GetConsumedItems(gctx, userID)
		return nil
	})
	g.Go(func() error {
		pubs, pubsErr = s.topPublishers(gctx, userID)
		return nil
	})
	g.Go(func() error {
		sims, err := s.computeSimilarities(gctx, userID)
		if err != nil {
			collabErr = err
			return nil
		}
		collab = s.collaborativeScores(gctx, sims)
		return nil
	})

	_ = g.Wait()

	tid := TraceIDFromContext(ctx)
	var degraded []string
	degrade := func(part string, err error) {
		degraded = append(degraded, part)
		RecommendationDegradedTotal.WithLabelValues(part).Inc()
		logger.Warn("recommendation_degraded",
			"trace_id", tid,
			"user_id", userID,
			"part", part,
			"error", err,
		)
	}

	if prefsErr != nil {
		degrade(PartPreferences, prefsErr)
		prefs = nil
	}
	if pubsErr != nil {
		degrade(PartTopPublishers, pubsErr)
		pubs = nil
	}
	if collabErr != nil {
		degrade(PartCollaborative, collabErr)
		collab = nil
	}

	if consumedErr != nil {
		return domain.UserProfile{}, nil, degraded, fmt.Errorf("failed to load consumed items of user %d: %w", userID, consumedErr)
	}

	if prefs == nil {
		prefs = map[string]float64{}
	}
	if consumed == nil {
		consumed = map[string]struct{}{}
	}
	if collab == nil {
		collab = map[string]float64{}
	}

	profile := domain.UserProfile{
		ExplicitPreferences: prefs,
		ConsumedItems:       consumed,
		TopPublishers:       pubs,
	}
	return profile, collab, degraded, nil
}

func (s *Service) searchCatalog(ctx context.Context, query string) ([]domain.CandidateItem, error) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.CatalogTimeout)
	defer cancel()

	candidates, err := s.catalog.Search(cctx, query, s.cfg.CatalogLimit)
	if err != nil {
		return nil, err
	}
	if errors.Is(cctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return nil, fmt.Errorf("catalog search %q: %w", query, domain.ErrCatalogTimeout)
	}
	return candidates, nil
}
