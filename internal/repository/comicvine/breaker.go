package comicvine

import (
	"comicSnap/domain"
	"comicSnap/pkg/logger"
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

type searcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error)
}

type BreakerSettings struct {
	Name string

	// requests allowed through while half-open
	MaxRequests uint32

	// counts reset after this long in the closed state
	Interval time.Duration

	// how long the circuit stays open before probing again
	OpenTimeout time.Duration

	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "comicvine-api",
		MaxRequests:  1,
		Interval:     time.Minute,
		OpenTimeout:  30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerGateway fails fast with domain.ErrCatalogUnavailable while
// the catalog keeps failing. It never retries.
type CircuitBreakerGateway struct {
	next searcher
	cb   *gobreaker.CircuitBreaker[[]domain.CandidateItem]
	name string
}

func NewCircuitBreakerGateway(next searcher, s BreakerSettings) *CircuitBreakerGateway {
	CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]domain.CandidateItem](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("catalog_circuit_state", "name", name, "from", from.String(), "to", to.String())
			CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		// a caller giving up is not a catalog failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &CircuitBreakerGateway{
		next: next,
		cb:   cb,
		name: s.Name,
	}
}

func (g *CircuitBreakerGateway) Search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error) {
	items, err := g.cb.Execute(func() ([]domain.CandidateItem, error) {
		return g.next.Search(ctx, query, limit)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			CatalogRequestsTotal.WithLabelValues(g.name, "rejected").Inc()
			return nil, fmt.Errorf("catalog circuit %s: %w: %w", g.name, domain.ErrCatalogUnavailable, err)
		}
		CatalogRequestsTotal.WithLabelValues(g.name, "failure").Inc()
		return nil, err
	}

	CatalogRequestsTotal.WithLabelValues(g.name, "success").Inc()
	return items, nil
}

func (g *CircuitBreakerGateway) State() gobreaker.State {
	return g.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
