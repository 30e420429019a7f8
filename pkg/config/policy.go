package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// policyFile mirrors the YAML layout:
//
//	recommendation:
//	  strong_endorsement_threshold: 4
//	  top_publisher_count: 3
//	  catalog_limit: 100
//	  catalog_timeout: 5s
//	  fallback_query: comics
//	  default_limit: 10
//
// Keys left out keep their env/default value.
type policyFile struct {
	Recommendation struct {
		StrongEndorsementThreshold *int    `yaml:"strong_endorsement_threshold"`
		TopPublisherCount          *int    `yaml:"top_publisher_count"`
		CatalogLimit               *int    `yaml:"catalog_limit"`
		CatalogTimeout             *string `yaml:"catalog_timeout"`
		FallbackQuery              *string `yaml:"fallback_query"`
		DefaultLimit               *int    `yaml:"default_limit"`
	} `yaml:"recommendation"`
}

func (r *RecommendationConfig) applyPolicyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read policy file: %w", err)
	}
	return r.applyPolicy(data)
}

func (r *RecommendationConfig) applyPolicy(data []byte) error {
	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parse policy yaml: %w", err)
	}

	p := pf.Recommendation
	if p.StrongEndorsementThreshold != nil {
		r.StrongEndorsementThreshold = *p.StrongEndorsementThreshold
	}
	if p.TopPublisherCount != nil {
		r.TopPublisherCount = *p.TopPublisherCount
	}
	if p.CatalogLimit != nil {
		r.CatalogLimit = *p.CatalogLimit
	}
	if p.CatalogTimeout != nil {
		d, err := time.ParseDuration(*p.CatalogTimeout)
		if err != nil {
			return fmt.Errorf("invalid catalog_timeout: %w", err)
		}
		r.CatalogTimeout = d
	}
	if p.FallbackQuery != nil {
		r.FallbackQuery = *p.FallbackQuery
	}
	if p.DefaultLimit != nil {
		r.DefaultLimit = *p.DefaultLimit
	}
	return nil
}
