// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts save errors to the {ok:false, error} envelope and other domain errors to Huma errors

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"postsheet-api/api/dto/mappers"
	"postsheet-api/api/dto/responses"
	coreerrors "postsheet-api/core/errors"
	"postsheet-api/core/save"
)

var codeStatus = map[coreerrors.Code]int{
	coreerrors.CodeMissingFields:      http.StatusBadRequest,
	coreerrors.CodeMissingSheetID:     http.StatusBadRequest,
	coreerrors.CodeDuplicate:          http.StatusConflict,
	coreerrors.CodeUnauthorized:       http.StatusUnauthorized,
	coreerrors.CodeSheetsAppendFailed: http.StatusBadGateway,
	coreerrors.CodeNetworkError:       http.StatusServiceUnavailable,
	coreerrors.CodeInternal:           http.StatusInternalServerError,
}

// StatusForCode maps a save error code onto an HTTP status
func StatusForCode(code coreerrors.Code) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// toSaveErrorResponse renders a save failure, attaching the earlier record
// for duplicates
func toSaveErrorResponse(err error, now time.Time) *responses.ErrorResponse {
	var dup *save.DuplicateError
	if errors.As(err, &dup) {
		record := mappers.ToRecordResponse(dup.Record, now)
		resp := responses.NewErrorResponse(http.StatusConflict, string(coreerrors.CodeDuplicate), dup.Err.Message)
		resp.Category = string(coreerrors.CategoryConflict)
		resp.Duplicate = &record
		return resp
	}

	var saveErr *coreerrors.SaveError
	if errors.As(err, &saveErr) {
		message := saveErr.Message
		if saveErr.Code == coreerrors.CodeInternal {
			message = "internal error"
		}
		resp := responses.NewErrorResponse(StatusForCode(saveErr.Code), string(saveErr.Code), message)
		resp.Category = string(saveErr.Category())
		return resp
	}

	resp := responses.NewErrorResponse(http.StatusInternalServerError, string(coreerrors.CodeInternal), "internal error")
	resp.Category = string(coreerrors.CategoryInternal)
	return resp
}

// toHumaError converts non-save domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if coreerrors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if coreerrors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
