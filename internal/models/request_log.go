package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RequestLog records a single dispatched Web API call.
type RequestLog struct {
	id            string
	method        string
	url           string
	statusCode    int
	ok            bool
	duration      time.Duration
	responseBytes int
	err           string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewRequestLog creates a [RequestLog] stamped with the current time. The ID is assigned on persistence.
func NewRequestLog(method, url string, statusCode int, duration time.Duration, responseBytes int, err error) *RequestLog {
	now := time.Now().UTC()
	l := &RequestLog{
		method:        strings.ToUpper(method),
		url:           url,
		statusCode:    statusCode,
		ok:            statusCode >= 200 && statusCode < 300,
		duration:      duration,
		responseBytes: responseBytes,
		createdAt:     now,
		updatedAt:     now,
	}
	if err != nil {
		l.err = err.Error()
		l.ok = false
	}
	return l
}

// HydrateRequestLog rebuilds a [RequestLog] from stored columns.
func HydrateRequestLog(id, method, url string, statusCode int, ok bool, duration time.Duration, responseBytes int, errText string, createdAt, updatedAt time.Time) *RequestLog {
	return &RequestLog{
		id:            id,
		method:        method,
		url:           url,
		statusCode:    statusCode,
		ok:            ok,
		duration:      duration,
		responseBytes: responseBytes,
		err:           errText,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (l *RequestLog) ID() string              { return l.id }
func (l *RequestLog) Method() string          { return l.method }
func (l *RequestLog) URL() string             { return l.url }
func (l *RequestLog) StatusCode() int         { return l.statusCode }
func (l *RequestLog) OK() bool                { return l.ok }
func (l *RequestLog) Duration() time.Duration { return l.duration }
func (l *RequestLog) ResponseBytes() int      { return l.responseBytes }
func (l *RequestLog) ErrorText() string       { return l.err }
func (l *RequestLog) CreatedAt() time.Time    { return l.createdAt }
func (l *RequestLog) UpdatedAt() time.Time    { return l.updatedAt }

func (l *RequestLog) SetID(id string)          { l.id = id }
func (l *RequestLog) SetCreatedAt(t time.Time) { l.createdAt = t }
func (l *RequestLog) SetUpdatedAt(t time.Time) { l.updatedAt = t }

// Validate checks that the log names a known verb and a URL.
func (l *RequestLog) Validate() error {
	switch l.method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return fmt.Errorf("invalid method %q", l.method)
	}
	if l.url == "" {
		return fmt.Errorf("url is required")
	}
	if l.statusCode < 0 {
		return fmt.Errorf("invalid status code %d", l.statusCode)
	}
	return nil
}

// MarshalJSON exposes the unexported fields for CLI output.
func (l *RequestLog) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID            string    `json:"id"`
		Method        string    `json:"method"`
		URL           string    `json:"url"`
		StatusCode    int       `json:"status_code"`
		OK            bool      `json:"ok"`
		DurationMs    int64     `json:"duration_ms"`
		ResponseBytes int       `json:"response_bytes"`
		Error         string    `json:"error,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
	}{
		ID:            l.id,
		Method:        l.method,
		URL:           l.url,
		StatusCode:    l.statusCode,
		OK:            l.ok,
		DurationMs:    l.duration.Milliseconds(),
		ResponseBytes: l.responseBytes,
		Error:         l.err,
		CreatedAt:     l.createdAt,
	})
}
