package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Redis          RedisConfig
	ComicVine      ComicVineConfig
	Recommendation RecommendationConfig
	Catalog        CatalogConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type ComicVineConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// RecommendationConfig is the engine policy. Values can be overridden by the
// YAML file named in RECOMMENDATION_POLICY_FILE.
type RecommendationConfig struct {
	StrongEndorsementThreshold int
	TopPublisherCount          int
	CatalogLimit               int
	CatalogTimeout             time.Duration
	FallbackQuery              string
	DefaultLimit               int
	PolicyFile                 string
}

type CatalogConfig struct {
	MaxSearchResults int
	CacheTTL         time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cvTimeout, err := getEnvDuration("COMICVINE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	recoTimeout, err := getEnvDuration("RECOMMENDATION_CATALOG_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	threshold, err := getEnvInt("RECOMMENDATION_STRONG_THRESHOLD", 4)
	if err != nil {
		return nil, err
	}

	topPublishers, err := getEnvInt("RECOMMENDATION_TOP_PUBLISHERS", 3)
	if err != nil {
		return nil, err
	}

	catalogLimit, err := getEnvInt("RECOMMENDATION_CATALOG_LIMIT", 100)
	if err != nil {
		return nil, err
	}

	defaultLimit, err := getEnvInt("RECOMMENDATION_DEFAULT_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	maxSearch, err := getEnvInt("MAX_SEARCH_RESULTS", 100)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := getEnvDuration("CATALOG_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ComicSnap API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "comicsnap"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		ComicVine: ComicVineConfig{
			APIKey:    getEnv("COMICVINE_API_KEY", ""),
			BaseURL:   getEnv("COMICVINE_BASE_URL", "https://comicvine.gamespot.com/api"),
			Timeout:   cvTimeout,
			UserAgent: getEnv("COMICVINE_USER_AGENT", "ComicSnap/1.0"),
		},
		Recommendation: RecommendationConfig{
			StrongEndorsementThreshold: threshold,
			TopPublisherCount:          topPublishers,
			CatalogLimit:               catalogLimit,
			CatalogTimeout:             recoTimeout,
			FallbackQuery:              getEnv("RECOMMENDATION_FALLBACK_QUERY", "comics"),
			DefaultLimit:               defaultLimit,
			PolicyFile:                 getEnv("RECOMMENDATION_POLICY_FILE", ""),
		},
		Catalog: CatalogConfig{
			MaxSearchResults: maxSearch,
			CacheTTL:         cacheTTL,
		},
	}

	if cfg.Recommendation.PolicyFile != "" {
		if err := cfg.Recommendation.applyPolicyFile(cfg.Recommendation.PolicyFile); err != nil {
			return nil, err
		}
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.ComicVine.APIKey == "" {
		return nil, errors.New("missing comicvine api key")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges that env parsing alone cannot catch.
func (c *Config) Validate() error {
	r := c.Recommendation
	if r.StrongEndorsementThreshold < 1 || r.StrongEndorsementThreshold > 5 {
		return fmt.Errorf("strong endorsement threshold must be between 1 and 5, got %d", r.StrongEndorsementThreshold)
	}
	if r.TopPublisherCount <= 0 {
		return errors.New("top publisher count must be positive")
	}
	if r.CatalogLimit <= 0 {
		return errors.New("catalog limit must be positive")
	}
	if r.CatalogTimeout <= 0 {
		return errors.New("catalog timeout must be positive")
	}
	if r.DefaultLimit <= 0 {
		return errors.New("default recommendation limit must be positive")
	}
	if c.Catalog.MaxSearchResults <= 0 {
		return errors.New("max search results must be positive")
	}
	if c.ComicVine.Timeout <= 0 {
		return errors.New("comicvine timeout must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
