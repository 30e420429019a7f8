package redis

import (
	"comicSnap/business/catalog"
	"comicSnap/domain"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type cachedSearch struct {
	Items    []domain.CandidateItem `json:"items"`
	CachedAt time.Time              `json:"cached_at"`
}

type CatalogCacheRepository struct {
	client *redis.Client
}

var _ catalog.SearchCache = (*CatalogCacheRepository)(nil)

func NewCatalogCacheRepository(client *redis.Client) *CatalogCacheRepository {
	return &CatalogCacheRepository{
		client: client,
	}
}

// SetSearch stores search results under key for ttl.
func (r *CatalogCacheRepository) SetSearch(ctx context.Context, key string, items []domain.CandidateItem, ttl time.Duration) error {
	data, err := json.Marshal(cachedSearch{Items: items, CachedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store search results in Redis: %w", err)
	}

	return nil
}

// GetSearch returns cached results; ok is false on a miss.
func (r *CatalogCacheRepository) GetSearch(ctx context.Context, key string) ([]domain.CandidateItem, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get search results from Redis: %w", err)
	}

	var cached cachedSearch
	if err := json.Unmarshal(val, &cached); err != nil {
		// drop the unreadable entry so the next request refills it
		_ = r.client.Del(ctx, key).Err()
		return nil, false, fmt.Errorf("failed to unmarshal search results: %w", err)
	}

	return cached.Items, true, nil
}
