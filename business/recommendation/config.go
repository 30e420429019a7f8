package recommendation

import "time"

type Config struct {
	// peers' ratings at or above this count as endorsements
	StrongEndorsementThreshold int

	// how many of the user's best-rated publishers seed the catalog query
	TopPublisherCount int

	// candidates requested from the catalog per recommendation
	CatalogLimit   int
	CatalogTimeout time.Duration

	// catalog query used when the user has no publisher affinity
	FallbackQuery string

	DefaultLimit int
}

const (
	defaultStrongEndorsementThreshold = 4
	defaultTopPublisherCount          = 3
	defaultCatalogLimit               = 100
	defaultCatalogTimeout             = 5 * time.Second
	defaultFallbackQuery              = "comics"
	defaultLimit                      = 10
)

func DefaultConfig() Config {
	return Config{
		StrongEndorsementThreshold: defaultStrongEndorsementThreshold,
		TopPublisherCount:          defaultTopPublisherCount,
		CatalogLimit:               defaultCatalogLimit,
		CatalogTimeout:             defaultCatalogTimeout,
		FallbackQuery:              defaultFallbackQuery,
		DefaultLimit:               defaultLimit,
	}
}

// withDefaults fills zero values so a partially built Config stays usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.StrongEndorsementThreshold <= 0 {
		c.StrongEndorsementThreshold = d.StrongEndorsementThreshold
	}
	if c.TopPublisherCount <= 0 {
		c.TopPublisherCount = d.TopPublisherCount
	}
	if c.CatalogLimit <= 0 {
		c.CatalogLimit = d.CatalogLimit
	}
	if c.CatalogTimeout <= 0 {
		c.CatalogTimeout = d.CatalogTimeout
	}
	if c.FallbackQuery == "" {
		c.FallbackQuery = d.FallbackQuery
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	return c
}
