// ABOUTME: Capture handlers for the Huma API
// ABOUTME: Saves captures, stages per-tab metadata and resolves notification links

package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"postsheet-api/api/dto/mappers"
	"postsheet-api/api/dto/requests"
	"postsheet-api/api/dto/responses"
	"postsheet-api/api/middleware"
	"postsheet-api/core/domain"
	"postsheet-api/core/interfaces"
	"postsheet-api/core/save"
)

// Saver runs the save pipeline for one capture
type Saver interface {
	Save(ctx context.Context, req domain.CaptureRequest) (*domain.SaveResult, error)
	Session() *save.Session
}

// CaptureHandler handles capture requests
type CaptureHandler struct {
	saver  Saver
	logger interfaces.Logger
	now    func() time.Time
}

// NewCaptureHandler creates a new capture handler
func NewCaptureHandler(saver Saver, logger interfaces.Logger) *CaptureHandler {
	return &CaptureHandler{
		saver:  saver,
		logger: logger,
		now:    time.Now,
	}
}

// RegisterRoutes registers capture routes
func (h *CaptureHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "saveCapture",
		Method:      http.MethodPost,
		Path:        "/captures",
		Summary:     "Save a captured post",
		Description: "Deduplicates the post by canonical URL, optionally enriches it with an AI summary, and appends it to the configured spreadsheet",
		Tags:        []string{"Captures"},
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusConflict, http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.SaveCapture)

	huma.Register(api, huma.Operation{
		OperationID: "stagePendingCapture",
		Method:      http.MethodPut,
		Path:        "/tabs/{tabId}/pending",
		Summary:     "Stage capture metadata for a tab",
		Description: "Stores author metadata scraped from a tab so the next capture from that tab can merge it",
		Tags:        []string{"Captures"},
	}, h.StagePending)

	huma.Register(api, huma.Operation{
		OperationID: "getNotificationLink",
		Method:      http.MethodGet,
		Path:        "/notifications/{id}",
		Summary:     "Resolve a notification",
		Description: "Returns the spreadsheet link a save notification points at",
		Tags:        []string{"Captures"},
	}, h.NotificationLink)
}

// SaveCaptureInput defines the input for saving a capture
type SaveCaptureInput struct {
	Body requests.CaptureRequest
}

// SaveCaptureOutput defines the output for saving a capture
type SaveCaptureOutput struct {
	Body responses.SaveResponse
}

// SaveCapture handles POST /captures
func (h *CaptureHandler) SaveCapture(ctx context.Context, input *SaveCaptureInput) (*SaveCaptureOutput, error) {
	capture := mappers.ToCaptureRequest(input.Body)
	client := middleware.ClientInfoFrom(ctx)
	capture.ClientIP = client.IP
	capture.UserAgent = client.UserAgent

	result, err := h.saver.Save(ctx, capture)
	if err != nil {
		resp := toSaveErrorResponse(err, h.now())
		if resp.GetStatus() >= http.StatusInternalServerError && h.logger != nil {
			h.logger.Error("Capture save failed", map[string]interface{}{
				"request_id": middleware.GetRequestID(ctx),
				"code":       resp.Code,
				"error":      err.Error(),
			})
		}
		return nil, resp
	}

	return &SaveCaptureOutput{Body: mappers.ToSaveResponse(result)}, nil
}

// StagePendingInput defines the input for staging tab metadata
type StagePendingInput struct {
	TabID string `path:"tabId" minLength:"1" maxLength:"128" doc:"Browser tab id"`
	Body  requests.PendingCaptureRequest
}

// StagePending handles PUT /tabs/{tabId}/pending
func (h *CaptureHandler) StagePending(ctx context.Context, input *StagePendingInput) (*struct{}, error) {
	tabID := strings.TrimSpace(input.TabID)
	if tabID == "" {
		return nil, huma.Error400BadRequest("tabId is required")
	}
	h.saver.Session().SetPending(tabID, mappers.ToPendingCapture(input.Body, h.now()))
	return nil, nil
}

// NotificationLinkInput defines the input for resolving a notification
type NotificationLinkInput struct {
	ID string `path:"id" doc:"Notification id returned by a save"`
}

// NotificationLinkOutput defines the output for resolving a notification
type NotificationLinkOutput struct {
	Body responses.NotificationLinkResponse
}

// NotificationLink handles GET /notifications/{id}
func (h *CaptureHandler) NotificationLink(ctx context.Context, input *NotificationLinkInput) (*NotificationLinkOutput, error) {
	link, ok := h.saver.Session().Link(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("notification not found")
	}
	return &NotificationLinkOutput{Body: responses.NotificationLinkResponse{ID: input.ID, Link: link}}, nil
}
