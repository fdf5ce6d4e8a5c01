// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "uindex/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PubMedConfig holds settings for the publication source.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the number of PMIDs fetched per author (default 1000).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequestsPerSecond throttles outbound E-utilities calls. NCBI allows
	// 3 req/s anonymously and 10 req/s with an API key. 0 uses the default.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// OpenAlexConfig holds settings for the citation lookup.
type OpenAlexConfig struct {
	HTTPConfig `yaml:",inline"`

	// BatchSize is the number of DOIs per works request (default 50).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// Email is sent as the mailto parameter for polite pool access.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// CacheConfig holds settings for the result cache.
type CacheConfig struct {
	// Dir is the directory holding cache.db (default ~/.cache/uindex).
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a cached report stays fresh (default 7 days).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// Config groups all stage configurations.
type Config struct {
	PubMed   PubMedConfig   `json:"pubmed" yaml:"pubmed"`
	OpenAlex OpenAlexConfig `json:"openalex" yaml:"openalex"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
}
