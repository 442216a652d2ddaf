package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// RequestGet makes a direct GET request against the Web API.
func (r *Runner) RequestGet(ctx context.Context, cmd *cli.Command) error {
	return r.request(ctx, cmd, http.MethodGet)
}

// RequestPost makes a direct POST request against the Web API.
func (r *Runner) RequestPost(ctx context.Context, cmd *cli.Command) error {
	return r.request(ctx, cmd, http.MethodPost)
}

// RequestPut makes a direct PUT request against the Web API.
func (r *Runner) RequestPut(ctx context.Context, cmd *cli.Command) error {
	return r.request(ctx, cmd, http.MethodPut)
}

// RequestDelete makes a direct DELETE request against the Web API.
func (r *Runner) RequestDelete(ctx context.Context, cmd *cli.Command) error {
	return r.request(ctx, cmd, http.MethodDelete)
}

// request dispatches one raw call and prints the body as received.
//
// A non-2xx status still prints the body and is then returned as an error.
func (r *Runner) request(ctx context.Context, cmd *cli.Command, method string) error {
	if r.api == nil {
		return fmt.Errorf("%w: API service not initialized", shared.ErrServiceUnavailable)
	}

	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrMissingArgument)
	}

	query, err := parseQuery(cmd.StringSlice("query"))
	if err != nil {
		return err
	}

	var body any
	if data := cmd.String("data"); data != "" {
		if !json.Valid([]byte(data)) {
			return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
		}
		body = json.RawMessage(data)
	}

	r.logger.Info("dispatching request", "method", method, "path", path)

	resp, err := r.api.Do(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	r.logger.Info("response received", "status", resp.StatusCode, "bytes", len(resp.Body))

	if len(resp.Body) > 0 {
		if cmd.Bool("pretty") && resp.IsJSON() {
			if err := r.writeJSON(json.RawMessage(resp.Body), true); err != nil {
				return err
			}
		} else {
			r.output.Write(resp.Body)
			r.output.Write([]byte("\n"))
		}
	}

	return resp.Err()
}

// parseQuery turns repeated key=value flags into a query map. Later pairs win.
func parseQuery(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	query := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: query %q must be key=value", shared.ErrInvalidArgument, pair)
		}
		query[key] = value
	}
	return query, nil
}
