// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors with stable codes for API responses and remediation

package errors

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code surfaced to callers
type Code string

const (
	CodeMissingFields      Code = "missing_fields"
	CodeMissingSheetID     Code = "missing_sheet_id"
	CodeDuplicate          Code = "duplicate"
	CodeUnauthorized       Code = "unauthorized"
	CodeSheetsAppendFailed Code = "sheets_append_failed"
	CodeNetworkError       Code = "network_error"
	CodeInternal           Code = "internal"
)

// Category groups codes by how callers should react
type Category string

const (
	CategoryValidation    Category = "validation"
	CategoryConflict      Category = "conflict"
	CategoryAuthorization Category = "authorization"
	CategoryUpstream      Category = "upstream_unavailable"
	CategoryTransport     Category = "transport"
	CategoryQuota         Category = "quota_exceeded"
	CategoryInternal      Category = "internal"
)

var codeCategories = map[Code]Category{
	CodeMissingFields:      CategoryValidation,
	CodeMissingSheetID:     CategoryValidation,
	CodeDuplicate:          CategoryConflict,
	CodeUnauthorized:       CategoryAuthorization,
	CodeSheetsAppendFailed: CategoryUpstream,
	CodeNetworkError:       CategoryTransport,
	CodeInternal:           CategoryInternal,
}

// SaveError is a fatal save failure carrying a stable code
type SaveError struct {
	Code    Code
	Message string

	// Status is the upstream HTTP status, when one was received
	Status int

	Cause error
}

// Error implements the error interface
func (e *SaveError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *SaveError) Unwrap() error {
	return e.Cause
}

// Category returns the category of the error code
func (e *SaveError) Category() Category {
	if c, ok := codeCategories[e.Code]; ok {
		return c
	}
	return CategoryInternal
}

// NewSaveError creates a SaveError with the given code and message
func NewSaveError(code Code, message string, cause error) *SaveError {
	return &SaveError{Code: code, Message: message, Cause: cause}
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// CodeOf returns the save error code carried by err, or CodeInternal
func CodeOf(err error) Code {
	var saveErr *SaveError
	if errors.As(err, &saveErr) {
		return saveErr.Code
	}
	if IsValidation(err) {
		return CodeMissingFields
	}
	return CodeInternal
}

// HasCode reports whether err carries the given save error code
func HasCode(err error, code Code) bool {
	var saveErr *SaveError
	return errors.As(err, &saveErr) && saveErr.Code == code
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError or a validation-category SaveError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	var saveErr *SaveError
	return errors.As(err, &saveErr) && saveErr.Category() == CategoryValidation
}

// IsConflict checks if an error is a duplicate conflict
func IsConflict(err error) bool {
	return HasCode(err, CodeDuplicate)
}

// IsAuthorization checks if an error is an authorization failure
func IsAuthorization(err error) bool {
	return HasCode(err, CodeUnauthorized)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
