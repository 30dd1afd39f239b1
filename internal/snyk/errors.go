package snyk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMissingToken is returned when a client is built without an API key.
var ErrMissingToken = errors.New("SNYK_API_KEY must be set in environment variables or passed as parameter")

// APIError is a non-2xx response from the REST API. Body holds the raw
// payload; Detail is the first JSON:API error detail when one is present.
type APIError struct {
	StatusCode int
	Body       string
	Detail     string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("Snyk API Error: %d", e.StatusCode)
	}
	return fmt.Sprintf("Snyk API Error: %d - %s", e.StatusCode, body)
}

func newAPIError(status int, body []byte) *APIError {
	detail := gjson.GetBytes(body, "errors.0.detail").String()
	if detail == "" {
		detail = gjson.GetBytes(body, "errors.0.title").String()
	}
	return &APIError{StatusCode: status, Body: string(body), Detail: detail}
}

// StatusCode returns the HTTP status of err when it wraps an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
