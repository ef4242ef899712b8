// ABOUTME: Enrichment configuration for service-level control of AI summaries
// ABOUTME: Provides the quota tier table and client options independent of HTTP request structures

package config

import "time"

// Deployment tiers
const (
	TierProduction  = "production"
	TierDevelopment = "development"
	TierTest        = "test"
)

// DefaultAITimeout bounds a single summarization request
const DefaultAITimeout = 12 * time.Second

// TierLimits holds the daily AI ceilings for one deployment tier
type TierLimits struct {
	// Licensed applies when a license key is stored
	Licensed int

	// Anonymous applies to fingerprinted callers
	Anonymous int
}

// QuotaTable maps a deployment tier to its ceilings
type QuotaTable map[string]TierLimits

// DefaultQuotaTable returns the built-in ceilings per tier
func DefaultQuotaTable() QuotaTable {
	return QuotaTable{
		TierProduction:  {Licensed: 100, Anonymous: 10},
		TierDevelopment: {Licensed: 100, Anonymous: 3},
		TierTest:        {Licensed: 100, Anonymous: 3},
	}
}

// Limit resolves the daily ceiling. Unknown tiers use the production row.
func (t QuotaTable) Limit(tier string, licensed bool) int {
	limits, ok := t[tier]
	if !ok {
		limits, ok = t[TierProduction]
		if !ok {
			return 0
		}
	}
	if licensed {
		return limits.Licensed
	}
	return limits.Anonymous
}

// EnrichmentConfig controls the AI enrichment client
type EnrichmentConfig struct {
	// Endpoint is the summarization service URL
	Endpoint string

	// Timeout bounds each request
	Timeout time.Duration

	// Tier selects the row of Quotas
	Tier string

	Quotas QuotaTable
}

// DefaultEnrichmentConfig returns production defaults
func DefaultEnrichmentConfig() EnrichmentConfig {
	return EnrichmentConfig{
		Timeout: DefaultAITimeout,
		Tier:    TierProduction,
		Quotas:  DefaultQuotaTable(),
	}
}

// EnrichmentOption is a functional option for configuring enrichment
type EnrichmentOption func(*EnrichmentConfig)

// WithEndpoint sets the summarization service URL
func WithEndpoint(endpoint string) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		c.Endpoint = endpoint
	}
}

// WithTimeout overrides the request timeout; non-positive values are ignored
func WithTimeout(d time.Duration) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithTier selects the deployment tier
func WithTier(tier string) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		c.Tier = tier
	}
}

// WithQuotas replaces the quota table
func WithQuotas(q QuotaTable) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		if q != nil {
			c.Quotas = q
		}
	}
}

// NewEnrichmentConfig creates a new enrichment configuration with the given options
func NewEnrichmentConfig(opts ...EnrichmentOption) EnrichmentConfig {
	config := DefaultEnrichmentConfig()

	for _, opt := range opts {
		opt(&config)
	}

	return config
}
