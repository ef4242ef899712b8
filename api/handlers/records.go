// ABOUTME: Record handlers expose the local index of saved captures

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"postsheet-api/api/dto/mappers"
	"postsheet-api/api/dto/responses"
	coreerrors "postsheet-api/core/errors"
	"postsheet-api/core/interfaces"
)

// RecordHandler handles record listing
type RecordHandler struct {
	store interfaces.RecordStore
	now   func() time.Time
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(store interfaces.RecordStore) *RecordHandler {
	return &RecordHandler{store: store, now: time.Now}
}

// RegisterRoutes registers record routes
func (h *RecordHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listRecords",
		Method:      http.MethodGet,
		Path:        "/records",
		Summary:     "List saved records",
		Description: "Returns retained records, newest first",
		Tags:        []string{"Records"},
	}, h.ListRecords)

	huma.Register(api, huma.Operation{
		OperationID: "getRecord",
		Method:      http.MethodGet,
		Path:        "/records/{hash}",
		Summary:     "Get a saved record",
		Description: "Looks up a record by the content id of its canonical URL",
		Tags:        []string{"Records"},
	}, h.GetRecord)
}

// ListRecordsOutput defines the output for listing records
type ListRecordsOutput struct {
	Body responses.RecordListResponse
}

// ListRecords handles GET /records
func (h *RecordHandler) ListRecords(ctx context.Context, _ *struct{}) (*ListRecordsOutput, error) {
	records, err := h.store.ListAll(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ListRecordsOutput{Body: mappers.ToRecordListResponse(records, h.now())}, nil
}

// GetRecordInput defines the input for a record lookup
type GetRecordInput struct {
	Hash string `path:"hash" minLength:"1" doc:"Content id (urlHash)"`
}

// GetRecordOutput defines the output for a record lookup
type GetRecordOutput struct {
	Body responses.RecordResponse
}

// GetRecord handles GET /records/{hash}
func (h *RecordHandler) GetRecord(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error) {
	record, err := h.store.FindByHash(ctx, input.Hash)
	if err != nil {
		return nil, toHumaError(err)
	}
	if record == nil {
		return nil, toHumaError(&coreerrors.NotFoundError{Resource: "record", ID: input.Hash})
	}
	return &GetRecordOutput{Body: mappers.ToRecordResponse(*record, h.now())}, nil
}
