package catalog

import (
	"comicSnap/domain"
	"comicSnap/pkg/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CatalogGateway contract interface
type CatalogGateway interface {
	Search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error)
}

// SearchCache stores recent search results. A miss is (nil, false, nil).
type SearchCache interface {
	GetSearch(ctx context.Context, key string) ([]domain.CandidateItem, bool, error)
	SetSearch(ctx context.Context, key string, items []domain.CandidateItem, ttl time.Duration) error
}

var ErrEmptyQuery = errors.New("search query is required")

type catalogService struct {
	gateway    CatalogGateway
	cache      SearchCache
	maxResults int
	cacheTTL   time.Duration
}

// NewCatalogService builds the search service. cache may be nil.
func NewCatalogService(gateway CatalogGateway, cache SearchCache, maxResults int, cacheTTL time.Duration) *catalogService {
	if maxResults <= 0 {
		maxResults = 100
	}
	return &catalogService{
		gateway:    gateway,
		cache:      cache,
		maxResults: maxResults,
		cacheTTL:   cacheTTL,
	}
}

// Search looks the query up in the external catalog, dropping untitled
// records. limit is clamped to the configured maximum.
func (s *catalogService) Search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 || limit > s.maxResults {
		limit = s.maxResults
	}

	key := cacheKey(query, limit)
	if s.cache != nil && s.cacheTTL > 0 {
		items, ok, err := s.cache.GetSearch(ctx, key)
		if err != nil {
			logger.Warn("catalog_cache_read_failed", "key", key, "error", err)
		} else if ok {
			logger.Debug("catalog_cache_hit", "key", key, "results", len(items))
			return items, nil
		}
	}

	items, err := s.gateway.Search(ctx, query, limit)
	if err != nil {
		logger.Error("Failed to search catalog", err, "query", query)
		return nil, err
	}

	out := make([]domain.CandidateItem, 0, len(items))
	for _, it := range items {
		if !domain.UsableTitle(it.Title) {
			continue
		}
		out = append(out, it)
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.SetSearch(ctx, key, out, s.cacheTTL); err != nil {
			logger.Warn("catalog_cache_write_failed", "key", key, "error", err)
		}
	}

	return out, nil
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("catalog:search:%s:%d", strings.ToLower(strings.Join(strings.Fields(query), " ")), limit)
}
