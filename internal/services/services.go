// package services defines the request dispatcher for the Spotify Web API and the typed endpoints built on it
package services

import (
	"context"
	"strconv"

	"github.com/desertthunder/spotx/internal/models"
)

// Requester dispatches one Web API call. [APIService] is the production implementation.
type Requester interface {
	// Do sends method to path with the given query and optional body and returns the raw response.
	// Non-2xx statuses are not errors at this level.
	Do(ctx context.Context, method, path string, query map[string]string, body any) (*APIResponse, error)
}

// Recorder receives one entry per dispatched call.
//
// repositories.RequestLogRepository persists them to SQLite.
type Recorder interface {
	Record(ctx context.Context, entry *models.RequestLog) error
}

// RecorderFunc adapts a function to [Recorder].
type RecorderFunc func(ctx context.Context, entry *models.RequestLog) error

func (f RecorderFunc) Record(ctx context.Context, entry *models.RequestLog) error { return f(ctx, entry) }

// PageOpts selects one page of an offset-paged endpoint. Zero values are omitted from the query.
type PageOpts struct {
	Limit  int    // 1-50; larger values are clamped
	Offset int    // Index of the first item
	Market string // ISO 3166-1 alpha-2 code or "from_token"; overrides the service default
}

const maxPageLimit = 50

func (o PageOpts) query(defaultMarket string) map[string]string {
	q := map[string]string{}
	if o.Limit > 0 {
		limit := o.Limit
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
		q["limit"] = strconv.Itoa(limit)
	}
	if o.Offset > 0 {
		q["offset"] = strconv.Itoa(o.Offset)
	}

	market := o.Market
	if market == "" {
		market = defaultMarket
	}
	if market != "" {
		q["market"] = market
	}
	return q
}
