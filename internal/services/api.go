// Request dispatcher for the Spotify Web API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"golang.org/x/oauth2"
)

// APIService performs authenticated calls against the Web API and hands back the raw response.
//
// It holds no mutable state after construction and is safe for concurrent use.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
	logger     *log.Logger
	recorder   Recorder
}

// APIServiceOpts configures [NewAPIService]. Zero values fall back to defaults.
type APIServiceOpts struct {
	BaseURL     string
	Token       string             // Static bearer token, used when TokenSource is nil
	TokenSource oauth2.TokenSource // Takes precedence over Token
	Client      *http.Client
	Timeout     time.Duration // Applied only when Client is nil
	Logger      *log.Logger
	Recorder    Recorder // Optional journal for dispatched calls
}

// NewAPIService creates a dispatcher from opts.
func NewAPIService(opts APIServiceOpts) *APIService {
	if opts.BaseURL == "" {
		opts.BaseURL = shared.DefaultBaseURL
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.TokenSource == nil {
		opts.TokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &APIService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.Client,
		tokens:     opts.TokenSource,
		logger:     opts.Logger,
		recorder:   opts.Recorder,
	}
}

// BaseURL returns the prefix every path is joined to.
func (a *APIService) BaseURL() string { return a.baseURL }

// APIResponse is the uniform result of every dispatched call, whatever the verb.
type APIResponse struct {
	Method     string
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// OK reports whether the status is in the 2xx range.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the body verbatim.
func (r *APIResponse) Text() string { return string(r.Body) }

// IsJSON reports whether the body holds a JSON document.
func (r *APIResponse) IsJSON() bool {
	return len(r.Body) > 0 && json.Valid(r.Body)
}

// Decode unmarshals the body into v.
func (r *APIResponse) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("failed to decode response: empty body (status %d)", r.StatusCode)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Err returns nil for 2xx responses and an [*APIError] otherwise.
func (r *APIResponse) Err() error {
	if r.OK() {
		return nil
	}
	return newAPIError(r.StatusCode, r.Body)
}

// BuildURL joins path onto baseURL with a single slash and appends the percent-encoded query.
//
// The path is kept byte for byte. Query keys are sorted and spaces encode as "+".
func BuildURL(baseURL, path string, query map[string]string) string {
	u := strings.TrimRight(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) == 0 {
		return u
	}

	values := make(url.Values, len(query))
	for k, v := range query {
		values.Set(k, v)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return u + sep + values.Encode()
}

// Do sends one request and returns the response whatever its status.
//
// body may be nil, a []byte or [json.RawMessage] sent as-is, or any value that is JSON encoded.
// Only transport, encoding and read failures are returned as errors.
func (a *APIService) Do(ctx context.Context, method, path string, query map[string]string, body any) (*APIResponse, error) {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: unsupported method %q", shared.ErrInvalidArgument, method)
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	if method == http.MethodGet && payload != nil {
		return nil, fmt.Errorf("%w: GET requests cannot carry a body", shared.ErrInvalidArgument)
	}

	fullURL := BuildURL(a.baseURL, path, query)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := a.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token is empty", shared.ErrNotAuthenticated)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.record(ctx, method, fullURL, 0, time.Since(start), 0, err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		a.record(ctx, method, fullURL, resp.StatusCode, elapsed, 0, err)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	a.logger.Debug("dispatched request", "method", method, "url", fullURL, "status", resp.StatusCode, "duration", elapsed)
	a.record(ctx, method, fullURL, resp.StatusCode, elapsed, len(data), nil)

	return &APIResponse{
		Method:     method,
		URL:        fullURL,
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}, nil
}

// Get performs a GET request.
func (a *APIService) Get(ctx context.Context, path string, query map[string]string) (*APIResponse, error) {
	return a.Do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a POST request with an optional JSON body.
func (a *APIService) Post(ctx context.Context, path string, query map[string]string, body any) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPost, path, query, body)
}

// Put performs a PUT request with an optional JSON body.
func (a *APIService) Put(ctx context.Context, path string, query map[string]string, body any) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPut, path, query, body)
}

// Delete performs a DELETE request with an optional JSON body.
func (a *APIService) Delete(ctx context.Context, path string, query map[string]string, body any) (*APIResponse, error) {
	return a.Do(ctx, http.MethodDelete, path, query, body)
}

func (a *APIService) record(ctx context.Context, method, fullURL string, status int, elapsed time.Duration, size int, reqErr error) {
	if reqErr != nil {
		a.logger.Debug("request failed", "method", method, "url", fullURL, "error", reqErr)
	}
	if a.recorder == nil {
		return
	}

	entry := models.NewRequestLog(method, fullURL, status, elapsed, size, reqErr)
	if err := a.recorder.Record(ctx, entry); err != nil {
		a.logger.Warn("failed to record request", "url", fullURL, "error", err)
	}
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return data, nil
	}
}
