package httpx

import (
	"encoding/json"
	"net/http"
)

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidJSON     = "INVALID_JSON"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
	CodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

type ErrorResponse struct {
	Error ErrorResponseBody `json:"error"`
	Meta  map[string]any    `json:"meta,omitempty"`
}

// ErrorResponseBody carries either a single message or, for validation
// failures, the list of messages.
type ErrorResponseBody struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message any    `json:"message"`
}

func buildMeta(r *http.Request) map[string]any {
	if r == nil {
		return nil
	}
	requestID := RequestIDFrom(r)
	if requestID == "" {
		return nil
	}
	return map[string]any{"request_id": requestID}
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// JSONError writes the error envelope. message is a string or a []string.
func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, code string, message any) {
	JSON(w, statusCode, ErrorResponse{
		Error: ErrorResponseBody{
			Status:  statusCode,
			Code:    code,
			Message: message,
		},
		Meta: buildMeta(r),
	})
}
