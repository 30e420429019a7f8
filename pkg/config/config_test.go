//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("COMICVINE_API_KEY", "key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	r := cfg.Recommendation
	if r.StrongEndorsementThreshold != 4 || r.TopPublisherCount != 3 || r.CatalogLimit != 100 {
		t.Fatalf("unexpected policy defaults: %+v", r)
	}
	if r.CatalogTimeout != 5*time.Second {
		t.Fatalf("CatalogTimeout = %v", r.CatalogTimeout)
	}
	if r.FallbackQuery != "comics" || r.DefaultLimit != 10 {
		t.Fatalf("unexpected fallback/default limit: %+v", r)
	}
	if cfg.Catalog.MaxSearchResults != 100 {
		t.Fatalf("MaxSearchResults = %d", cfg.Catalog.MaxSearchResults)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"jwt", "JWT_SECRET"},
		{"db password", "DB_PASSWORD"},
		{"comicvine key", "COMICVINE_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error when %s is missing", tt.unset)
			}
		})
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	setRequired(t)
	t.Setenv("RECOMMENDATION_STRONG_THRESHOLD", "9")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for threshold outside 1..5")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("COMICVINE_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
}

func TestPolicyFileOverrides(t *testing.T) {
	setRequired(t)

	path := filepath.Join(t.TempDir(), "policy.yaml")
	data := []byte("recommendation:\n  top_publisher_count: 5\n  catalog_timeout: 2s\n  fallback_query: manga\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RECOMMENDATION_POLICY_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	r := cfg.Recommendation
	if r.TopPublisherCount != 5 || r.CatalogTimeout != 2*time.Second || r.FallbackQuery != "manga" {
		t.Fatalf("policy not applied: %+v", r)
	}
	// untouched keys keep defaults
	if r.StrongEndorsementThreshold != 4 || r.DefaultLimit != 10 {
		t.Fatalf("untouched keys changed: %+v", r)
	}
}

func TestPolicyFileInvalidYAML(t *testing.T) {
	var r RecommendationConfig
	if err := r.applyPolicy([]byte("recommendation: [oops")); err == nil {
		t.Fatal("expected yaml parse error")
	}
}
