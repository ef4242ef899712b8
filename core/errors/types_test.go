package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSaveError_Error(t *testing.T) {
	err := NewSaveError(CodeSheetsAppendFailed, "Requested entity was not found.", nil)

	expected := "sheets_append_failed: Requested entity was not found."
	if err.Error() != expected {
		t.Errorf("SaveError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestSaveError_ErrorWithoutMessage(t *testing.T) {
	err := NewSaveError(CodeUnauthorized, "", nil)

	if err.Error() != "unauthorized" {
		t.Errorf("SaveError.Error() = %v, want unauthorized", err.Error())
	}
}

func TestSaveError_Category(t *testing.T) {
	tests := []struct {
		code Code
		want Category
	}{
		{CodeMissingFields, CategoryValidation},
		{CodeMissingSheetID, CategoryValidation},
		{CodeDuplicate, CategoryConflict},
		{CodeUnauthorized, CategoryAuthorization},
		{CodeSheetsAppendFailed, CategoryUpstream},
		{CodeNetworkError, CategoryTransport},
		{Code("something_new"), CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewSaveError(tt.code, "", nil)
			if got := err.Category(); got != tt.want {
				t.Errorf("Category() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSaveError_UnwrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewSaveError(CodeNetworkError, "append failed", cause)

	if !errors.Is(err, cause) {
		t.Error("SaveError should unwrap to its cause")
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("save: %w", NewSaveError(CodeDuplicate, "", nil))

	if got := CodeOf(wrapped); got != CodeDuplicate {
		t.Errorf("CodeOf(wrapped) = %v, want %v", got, CodeDuplicate)
	}
	if got := CodeOf(errors.New("boom")); got != CodeInternal {
		t.Errorf("CodeOf(plain) = %v, want %v", got, CodeInternal)
	}
	if got := CodeOf(&ValidationError{Field: "url", Message: "required"}); got != CodeMissingFields {
		t.Errorf("CodeOf(validation) = %v, want %v", got, CodeMissingFields)
	}
}

func TestIsConflictAndAuthorization(t *testing.T) {
	if !IsConflict(NewSaveError(CodeDuplicate, "", nil)) {
		t.Error("IsConflict should return true for duplicate")
	}
	if IsConflict(NewSaveError(CodeUnauthorized, "", nil)) {
		t.Error("IsConflict should return false for unauthorized")
	}
	if !IsAuthorization(fmt.Errorf("wrapped: %w", NewSaveError(CodeUnauthorized, "", nil))) {
		t.Error("IsAuthorization should see through wrapping")
	}
}

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{
		Resource: "record",
		ID:       "123",
	}

	expected := "record not found: 123"
	if err.Error() != expected {
		t.Errorf("NotFoundError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIsNotFound_WrappedError(t *testing.T) {
	notFound := &NotFoundError{
		Resource: "record",
		ID:       "123",
	}
	wrapped := fmt.Errorf("failed to get record: %w", notFound)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should return true for wrapped NotFoundError")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&ValidationError{Field: "url", Message: "invalid URL"}) {
		t.Error("IsValidation should return true for ValidationError")
	}
	if !IsValidation(NewSaveError(CodeMissingSheetID, "", nil)) {
		t.Error("IsValidation should return true for missing_sheet_id")
	}
	if IsValidation(errors.New("some other error")) {
		t.Error("IsValidation should return false for non-ValidationError")
	}
}

func TestIsExternalAPI(t *testing.T) {
	err := &ExternalAPIError{
		StatusCode: 500,
		Message:    "internal server error",
		API:        "summarizer",
	}

	if !IsExternalAPI(err) {
		t.Error("IsExternalAPI should return true for ExternalAPIError")
	}
	if IsExternalAPI(errors.New("some other error")) {
		t.Error("IsExternalAPI should return false for non-ExternalAPIError")
	}
}

func TestWrapError_PreservesOriginalError(t *testing.T) {
	originalErr := &NotFoundError{Resource: "record", ID: "abc"}
	wrappedErr := WrapError(originalErr, "failed to fetch record")

	if wrappedErr == nil {
		t.Fatal("WrapError should not return nil for non-nil error")
	}

	expectedMsg := "failed to fetch record: record not found: abc"
	if wrappedErr.Error() != expectedMsg {
		t.Errorf("WrapError message = %v, want %v", wrappedErr.Error(), expectedMsg)
	}

	if !IsNotFound(wrappedErr) {
		t.Error("Wrapped error should still be identifiable as NotFoundError")
	}
}

func TestWrapError_HandlesNilError(t *testing.T) {
	if WrapError(nil, "this should not happen") != nil {
		t.Error("WrapError should return nil when wrapping nil error")
	}
}
