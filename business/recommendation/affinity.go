package recommendation

import (
	"comicSnap/domain"
	"context"
	"fmt"
	"strings"
)

// topPublishers returns at most TopPublisherCount publishers ordered by the
// user's mean rating, best first.
func (s *Service) topPublishers(ctx context.Context, userID uint) ([]domain.PublisherAffinity, error) {
	n := s.cfg.TopPublisherCount

	pubs, err := s.store.GetTopPublishers(ctx, userID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load top publishers of user %d: %w", userID, err)
	}

	out := make([]domain.PublisherAffinity, 0, len(pubs))
	for _, p := range pubs {
		if strings.TrimSpace(p.Publisher) == "" {
			continue
		}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// buildCatalogQuery joins publisher names with " OR ", or returns fallback
// when there are none.
func buildCatalogQuery(pubs []domain.PublisherAffinity, fallback string) string {
	if len(pubs) == 0 {
		return fallback
	}

	names := make([]string, 0, len(pubs))
	for _, p := range pubs {
		names = append(names, p.Publisher)
	}
	return strings.Join(names, " OR ")
}
