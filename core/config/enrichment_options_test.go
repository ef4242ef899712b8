package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotaTable_Limit(t *testing.T) {
	table := DefaultQuotaTable()

	assert.Equal(t, 100, table.Limit(TierProduction, true))
	assert.Equal(t, 10, table.Limit(TierProduction, false))
	assert.Equal(t, 3, table.Limit(TierDevelopment, false))
	assert.Equal(t, 10, table.Limit("staging", false), "unknown tier falls back to production")
	assert.Equal(t, 0, QuotaTable{}.Limit(TierProduction, true))
}

func TestNewEnrichmentConfig_Options(t *testing.T) {
	cfg := NewEnrichmentConfig(
		WithEndpoint("https://ai.example.com/summarize"),
		WithTimeout(3*time.Second),
		WithTier(TierDevelopment),
	)

	assert.Equal(t, "https://ai.example.com/summarize", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, TierDevelopment, cfg.Tier)
	assert.NotNil(t, cfg.Quotas)
}

func TestNewEnrichmentConfig_IgnoresInvalidOverrides(t *testing.T) {
	cfg := NewEnrichmentConfig(WithTimeout(0), WithQuotas(nil))

	assert.Equal(t, DefaultAITimeout, cfg.Timeout)
	assert.Equal(t, DefaultQuotaTable(), cfg.Quotas)
}
