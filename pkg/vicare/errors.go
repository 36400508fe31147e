package vicare

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is an error response from the ViCare API.
type APIError struct {
	// StatusCode is the HTTP status of the failed request.
	StatusCode int `json:"statusCode"`

	// ErrorType is the vendor error classifier, e.g.
	// DEVICE_COMMUNICATION_ERROR or RATE_LIMIT_EXCEEDED.
	ErrorType string `json:"errorType"`

	// Message is the human-readable error description.
	Message string `json:"message"`

	// ViErrorID is the vendor's correlation id for support requests.
	ViErrorID string `json:"viErrorId"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("vicare api error %d (%s): %s", e.StatusCode, e.ErrorType, e.Message)
	}
	return fmt.Sprintf("vicare api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is a 404 from the API.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the error is a 401 from the API.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// newAPIError builds an APIError from a failed response. The vendor error
// body is used when it parses; otherwise the raw body becomes the message.
func newAPIError(statusCode int, body []byte) *APIError {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		apiErr.StatusCode = statusCode
		return &apiErr
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}
