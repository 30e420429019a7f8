package recommendation

import (
	"comicSnap/domain"
	"context"
	"errors"
)

// FailureReason tells a caller why a Result carries fewer entries than asked.
type FailureReason string

const (
	FailureNone               FailureReason = "none"
	FailureStoreUnavailable   FailureReason = "store_unavailable"
	FailureCatalogUnavailable FailureReason = "catalog_unavailable"
	FailureCatalogTimeout     FailureReason = "catalog_timeout"
	FailureCatalogMalformed   FailureReason = "catalog_malformed"
	FailureCanceled           FailureReason = "canceled"
	FailureInternal           FailureReason = "internal"
)

// Names of profile sub-computations that can fall back to empty.
const (
	PartPreferences   = "preferences"
	PartTopPublishers = "top_publishers"
	PartCollaborative = "collaborative"
)

type Result struct {
	// never nil
	Entries []domain.RecommendationEntry

	Failure FailureReason

	// sub-computations that failed and were treated as empty
	Degraded []string

	// catalog query that was issued, empty if the pass stopped earlier
	Query string

	Err error
}

func (r Result) OK() bool {
	return r.Failure == FailureNone
}

func failed(reason FailureReason, err error, degraded []string) Result {
	return Result{
		Entries:  []domain.RecommendationEntry{},
		Failure:  reason,
		Degraded: degraded,
		Err:      err,
	}
}

func catalogFailure(err error) FailureReason {
	switch {
	case errors.Is(err, domain.ErrCatalogTimeout), errors.Is(err, context.DeadlineExceeded):
		return FailureCatalogTimeout
	case errors.Is(err, domain.ErrCatalogMalformed):
		return FailureCatalogMalformed
	default:
		return FailureCatalogUnavailable
	}
}
