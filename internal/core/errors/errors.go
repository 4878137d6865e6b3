package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpValidationError      = "validation_failed"
	HttpPayloadTooLargeError = "payload_too_large"
	HttpNotFoundError        = "not_found"
	HttpInsufficientData     = "insufficient_data"
	HttpCooldownError        = "cooldown_active"
)

// ErrorResponse is the error response body for API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
