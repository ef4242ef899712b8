// ABOUTME: Error envelope returned for failed saves and other API errors
// ABOUTME: Implements huma.StatusError so handlers can return it directly

package responses

// ErrorResponse is the {ok:false, error, duplicate?} envelope
type ErrorResponse struct {
	status int

	OK        bool            `json:"ok"`
	Code      string          `json:"error" doc:"Stable error code"`
	Category  string          `json:"category,omitempty"`
	Message   string          `json:"message,omitempty"`
	Duplicate *RecordResponse `json:"duplicate,omitempty" doc:"The earlier save, for duplicate errors"`
}

// NewErrorResponse creates an error envelope sent with the given status
func NewErrorResponse(status int, code, message string) *ErrorResponse {
	return &ErrorResponse{status: status, Code: code, Message: message}
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorResponse) GetStatus() int {
	return e.status
}
