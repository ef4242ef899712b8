// ABOUTME: AI enrichment client calls the summarization service under a bounded timeout
// ABOUTME: Classifies every result into the outcome taxonomy; never fails the enclosing save

package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"postsheet-api/core/config"
	"postsheet-api/core/domain"
	coreerrors "postsheet-api/core/errors"
	"postsheet-api/core/interfaces"
	"postsheet-api/core/quota"
)

const maxResponseBytes = 1 << 20

// summarizeRequest is the wire request to the summarization service
type summarizeRequest struct {
	URL         string `json:"url"`
	PostContent string `json:"post_content"`
	Highlight   string `json:"highlight,omitempty"`
	LicenseKey  string `json:"licenseKey,omitempty"`
}

// summarizeResponse is decoded loosely; normalization validates each field
type summarizeResponse struct {
	Summary    interface{}           `json:"summary_160"`
	Tags       interface{}           `json:"tags"`
	Intent     interface{}           `json:"intent"`
	NextAction interface{}           `json:"next_action"`
	TokensIn   interface{}           `json:"tokens_in"`
	TokensOut  interface{}           `json:"tokens_out"`
	Quota      *domain.QuotaSnapshot `json:"quota,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// Client is the AI enrichment client
type Client struct {
	deps     interfaces.Dependencies
	ledger   interfaces.QuotaLedger
	settings interfaces.SettingsStore
	cfg      config.EnrichmentConfig
}

// NewClient creates an enrichment client
func NewClient(deps interfaces.Dependencies, ledger interfaces.QuotaLedger, settings interfaces.SettingsStore, cfg config.EnrichmentConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultAITimeout
	}
	if cfg.Quotas == nil {
		cfg.Quotas = config.DefaultQuotaTable()
	}
	return &Client{
		deps:     deps,
		ledger:   ledger,
		settings: settings,
		cfg:      cfg,
	}
}

// Identity resolves the caller identity and whether it is licensed
func (c *Client) Identity(ctx context.Context, clientIP, userAgent string) (identity, licenseKey string) {
	if c.settings != nil {
		key, err := c.settings.LicenseKey(ctx)
		if err != nil {
			c.warn("License key lookup failed, using anonymous identity", map[string]interface{}{
				"error": err.Error(),
			})
		} else if key != "" {
			return LicenseIdentity(key), key
		}
	}
	return AnonymousFingerprint(clientIP, userAgent), ""
}

// DailyLimit returns the ceiling for a licensed or anonymous caller
func (c *Client) DailyLimit(licensed bool) int {
	return c.cfg.Quotas.Limit(c.cfg.Tier, licensed)
}

// Usage reports today's usage for a caller without consuming allowance
func (c *Client) Usage(ctx context.Context, clientIP, userAgent string) (domain.QuotaResult, error) {
	identity, key := c.Identity(ctx, clientIP, userAgent)
	return c.ledger.Peek(ctx, quota.ScopeAI, identity, c.DailyLimit(key != ""))
}

// Summarize requests a summary for the capture
func (c *Client) Summarize(ctx context.Context, capture domain.CaptureRequest) domain.AIOutcome {
	identity, licenseKey := c.Identity(ctx, capture.ClientIP, capture.UserAgent)
	limit := c.DailyLimit(licenseKey != "")

	// configuration checks run before any allowance is consumed
	if strings.TrimSpace(c.cfg.Endpoint) == "" {
		return domain.AIOutcome{Status: domain.AIStatusError, Message: "AI endpoint not configured"}
	}
	if c.deps.HTTPClient == nil {
		return domain.AIOutcome{Status: domain.AIStatusError, Message: "HTTP client not configured"}
	}

	q, err := c.ledger.Increment(ctx, quota.ScopeAI, identity, limit)
	if err != nil {
		c.warn("Quota ledger unavailable", map[string]interface{}{
			"identity": identity,
			"error":    err.Error(),
		})
		return domain.AIOutcome{Status: domain.AIStatusError, Message: "quota ledger unavailable"}
	}
	if !q.Allowed {
		c.info("AI quota exhausted", map[string]interface{}{
			"identity": identity,
			"limit":    q.Limit,
			"count":    q.Count,
		})
		return domain.AIOutcome{
			Status:  domain.AIStatusQuota,
			Quota:   q.Snapshot(),
			Message: "daily AI limit reached",
		}
	}

	outcome := c.call(ctx, capture, licenseKey)
	if outcome.Quota == nil {
		outcome.Quota = q.Snapshot()
	}
	return outcome
}

func (c *Client) call(ctx context.Context, capture domain.CaptureRequest, licenseKey string) domain.AIOutcome {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(summarizeRequest{
		URL:         capture.URL,
		PostContent: capture.PostContent,
		Highlight:   capture.Highlight,
		LicenseKey:  licenseKey,
	})
	if err != nil {
		return errorOutcome("encode request: " + err.Error())
	}

	resp, err := c.deps.HTTPClient.Do(reqCtx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})
	if err != nil {
		return c.transportOutcome(reqCtx, err)
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxResponseBytes))
	if err != nil {
		return c.transportOutcome(reqCtx, err)
	}

	var parsed summarizeResponse
	parseErr := json.Unmarshal(body, &parsed)

	status := resp.StatusCode()
	switch {
	case status == http.StatusTooManyRequests:
		out := domain.AIOutcome{Status: domain.AIStatusQuota, Message: "AI service quota exhausted"}
		if parseErr == nil && parsed.Quota != nil {
			out.Quota = parsed.Quota
		}
		return out
	case status < 200 || status >= 300:
		apiErr := &coreerrors.ExternalAPIError{API: "summarizer", StatusCode: status, Message: http.StatusText(status)}
		if parseErr == nil && parsed.Error != "" {
			apiErr.Message = parsed.Error
		}
		c.warn("AI summarization failed", map[string]interface{}{
			"status": status,
			"url":    capture.URL,
			"error":  apiErr.Error(),
		})
		return errorOutcome(apiErr.Error())
	case parseErr != nil:
		return errorOutcome("decode response: " + parseErr.Error())
	}

	result := domain.AIResult{
		Summary:    NormalizeSummary(parsed.Summary),
		Tags:       NormalizeTags(parsed.Tags),
		Intent:     NormalizeIntent(parsed.Intent),
		NextAction: NormalizeNextAction(parsed.NextAction),
		TokensIn:   toInt(parsed.TokensIn),
		TokensOut:  toInt(parsed.TokensOut),
	}
	c.debug("AI summarization succeeded", map[string]interface{}{
		"url":        capture.URL,
		"tokens_in":  result.TokensIn,
		"tokens_out": result.TokensOut,
	})
	return domain.AIOutcome{Status: domain.AIStatusSuccess, Result: &result, Quota: parsed.Quota}
}

// transportOutcome separates a timeout from other transport failures
func (c *Client) transportOutcome(reqCtx context.Context, err error) domain.AIOutcome {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		c.warn("AI summarization timed out", map[string]interface{}{
			"timeout": c.cfg.Timeout.String(),
		})
		return domain.AIOutcome{Status: domain.AIStatusTimeout, Message: "AI request timed out"}
	}
	c.warn("AI summarization request failed", map[string]interface{}{
		"error": err.Error(),
	})
	return errorOutcome("request failed: " + err.Error())
}

func errorOutcome(msg string) domain.AIOutcome {
	return domain.AIOutcome{Status: domain.AIStatusError, Message: msg}
}

func (c *Client) debug(msg string, fields map[string]interface{}) {
	if c.deps.Logger != nil {
		c.deps.Logger.Debug(msg, fields)
	}
}

func (c *Client) info(msg string, fields map[string]interface{}) {
	if c.deps.Logger != nil {
		c.deps.Logger.Info(msg, fields)
	}
}

func (c *Client) warn(msg string, fields map[string]interface{}) {
	if c.deps.Logger != nil {
		c.deps.Logger.Warn(msg, fields)
	}
}
