// ABOUTME: Settings handlers read and update the destination sheet and license key

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"postsheet-api/api/dto/requests"
	"postsheet-api/api/dto/responses"
	"postsheet-api/core/settings"
)

// SettingsService reads and writes stored settings
type SettingsService interface {
	Get(ctx context.Context) (settings.Settings, error)
	SetSheetID(ctx context.Context, id string) error
	SetLicenseKey(ctx context.Context, key string) error
}

// SettingsHandler handles settings requests
type SettingsHandler struct {
	service SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSettings",
		Method:      http.MethodGet,
		Path:        "/settings",
		Summary:     "Get settings",
		Tags:        []string{"Settings"},
	}, h.GetSettings)

	huma.Register(api, huma.Operation{
		OperationID: "updateSettings",
		Method:      http.MethodPut,
		Path:        "/settings",
		Summary:     "Update settings",
		Description: "Sets the destination spreadsheet and AI license key. The key is never returned.",
		Tags:        []string{"Settings"},
	}, h.UpdateSettings)
}

// SettingsOutput defines the settings response
type SettingsOutput struct {
	Body responses.SettingsResponse
}

// UpdateSettingsInput defines the input for updating settings
type UpdateSettingsInput struct {
	Body requests.UpdateSettingsRequest
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
	return h.current(ctx)
}

// UpdateSettings handles PUT /settings
func (h *SettingsHandler) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*SettingsOutput, error) {
	if input.Body.SheetID != nil {
		if err := h.service.SetSheetID(ctx, *input.Body.SheetID); err != nil {
			return nil, toHumaError(err)
		}
	}
	if input.Body.LicenseKey != nil {
		if err := h.service.SetLicenseKey(ctx, *input.Body.LicenseKey); err != nil {
			return nil, toHumaError(err)
		}
	}
	return h.current(ctx)
}

func (h *SettingsHandler) current(ctx context.Context) (*SettingsOutput, error) {
	s, err := h.service.Get(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	out := &SettingsOutput{Body: responses.SettingsResponse{
		SheetID:       s.SheetID,
		HasLicenseKey: s.HasLicenseKey,
		LicenseHint:   s.LicenseHint,
	}}
	if s.SheetID != "" {
		out.Body.SheetURL = settings.SheetURL(s.SheetID)
	}
	return out, nil
}
