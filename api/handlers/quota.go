// ABOUTME: Quota handler reports today's AI enrichment usage for the caller

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"postsheet-api/api/dto/responses"
	"postsheet-api/api/middleware"
	"postsheet-api/core/domain"
)

// QuotaReporter reads AI usage without consuming allowance
type QuotaReporter interface {
	Identity(ctx context.Context, clientIP, userAgent string) (identity, licenseKey string)
	Usage(ctx context.Context, clientIP, userAgent string) (domain.QuotaResult, error)
}

// QuotaHandler handles quota requests
type QuotaHandler struct {
	reporter QuotaReporter
}

// NewQuotaHandler creates a new quota handler
func NewQuotaHandler(reporter QuotaReporter) *QuotaHandler {
	return &QuotaHandler{reporter: reporter}
}

// RegisterRoutes registers quota routes
func (h *QuotaHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getQuota",
		Method:      http.MethodGet,
		Path:        "/quota",
		Summary:     "Get AI quota usage",
		Description: "Reports today's AI summary usage for the calling identity (UTC day)",
		Tags:        []string{"Quota"},
	}, h.GetQuota)
}

// QuotaOutput defines the quota response
type QuotaOutput struct {
	Body responses.QuotaResponse
}

// GetQuota handles GET /quota
func (h *QuotaHandler) GetQuota(ctx context.Context, _ *struct{}) (*QuotaOutput, error) {
	client := middleware.ClientInfoFrom(ctx)
	usage, err := h.reporter.Usage(ctx, client.IP, client.UserAgent)
	if err != nil {
		return nil, toHumaError(err)
	}
	_, key := h.reporter.Identity(ctx, client.IP, client.UserAgent)

	return &QuotaOutput{Body: responses.QuotaResponse{
		Licensed:  key != "",
		Limit:     usage.Limit,
		Count:     usage.Count,
		Remaining: usage.Remaining,
	}}, nil
}
