// Package services talks to the Spotify Web API.
//
// # Request Dispatcher
//
// [APIService] is the single place an HTTP request is built. [APIService.Do] joins a relative path
// onto the base URL (https://api.spotify.com/v1 by default), percent-encodes the query map, attaches
// the bearer token from an [oauth2.TokenSource] and JSON-encodes any body. Every verb returns the same
// [APIResponse]; a non-2xx status is data, not an error. Errors are reserved for failures to build,
// send or read the request.
//
// There is no retry, backoff or caching. Paged endpoints are fetched one page per call.
//
// # Typed Endpoints
//
// [SpotifyService] wraps a [Requester] and decodes responses into [models] types. Non-2xx responses
// become [*APIError], which matches the sentinels of the shared package:
//   - [shared.ErrAPIRequest] : any non-2xx response
//   - [shared.ErrTokenExpired] : 401, the token needs to be replaced
//   - [shared.ErrForbidden] : 403, usually a missing scope or Premium
//   - [shared.ErrNotFound] : 404, including player calls with no active device
//   - [shared.ErrRateLimited] : 429
//
// # Journal
//
// When an [APIServiceOpts.Recorder] is set, each dispatched call is handed to it as a
// [models.RequestLog]. Recorder failures are logged and never surface to callers.
package services
