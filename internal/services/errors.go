package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

// APIError is a non-2xx Web API response.
//
// It always matches [shared.ErrAPIRequest] with errors.Is, and additionally the sentinel for its status:
// 401 [shared.ErrTokenExpired], 403 [shared.ErrForbidden], 404 [shared.ErrNotFound],
// 429 [shared.ErrRateLimited], 502/503 [shared.ErrServiceUnavailable].
type APIError struct {
	Status  int
	Message string
	Reason  string // Player error reason, empty for regular errors
	Body    []byte
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Body: body}

	var envelope models.PlayerErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		e.Message = envelope.Error.Message
		e.Reason = envelope.Error.Reason
		if envelope.Error.Status != 0 {
			e.Status = envelope.Error.Status
		}
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("spotify API error: status %d: %s (%s)", e.Status, e.Message, e.Reason)
	}
	return fmt.Sprintf("spotify API error: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

func (e *APIError) Is(target error) bool {
	switch target {
	case shared.ErrTokenExpired:
		return e.Status == http.StatusUnauthorized
	case shared.ErrForbidden:
		return e.Status == http.StatusForbidden
	case shared.ErrNotFound:
		return e.Status == http.StatusNotFound
	case shared.ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case shared.ErrServiceUnavailable:
		return e.Status == http.StatusBadGateway || e.Status == http.StatusServiceUnavailable
	}
	return false
}
