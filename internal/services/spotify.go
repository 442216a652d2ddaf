// Typed Spotify Web API endpoints built on [Requester]
//
// Reference: https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

// SpotifyService decodes Web API responses into the [models] types.
//
// Every method performs exactly one call. Paged endpoints return a single page;
// callers walk further pages by reissuing the call with [PageOpts.Offset].
type SpotifyService struct {
	api    Requester
	market string
}

// NewSpotifyService wraps api. market, when set, is sent with market-aware requests that do not specify one.
func NewSpotifyService(api Requester, market string) *SpotifyService {
	return &SpotifyService{api: api, market: market}
}

func (s *SpotifyService) Name() string { return "Spotify" }

// call dispatches a request, converts non-2xx statuses to [*APIError] and decodes the body into result when present.
func (s *SpotifyService) call(ctx context.Context, method, path string, query map[string]string, body, result any) (*APIResponse, error) {
	if s.api == nil {
		return nil, fmt.Errorf("%w: dispatcher not initialized", shared.ErrServiceUnavailable)
	}

	resp, err := s.api.Do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return resp, err
	}

	if result != nil && resp.StatusCode != http.StatusNoContent && len(resp.Body) > 0 {
		if err := resp.Decode(result); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

func (s *SpotifyService) get(ctx context.Context, path string, query map[string]string, result any) error {
	_, err := s.call(ctx, http.MethodGet, path, query, nil, result)
	return err
}

func (s *SpotifyService) marketQuery() map[string]string {
	if s.market == "" {
		return nil
	}
	return map[string]string{"market": s.market}
}

func segment(kind, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: %s ID", shared.ErrMissingArgument, kind)
	}
	return url.PathEscape(id), nil
}

func joinIDs(ids []string, max int) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: no IDs provided", shared.ErrMissingArgument)
	}
	if len(ids) > max {
		return "", fmt.Errorf("%w: maximum %d IDs allowed, got %d", shared.ErrInvalidArgument, max, len(ids))
	}
	return strings.Join(ids, ","), nil
}

// CurrentUser retrieves the profile of the token's owner.
func (s *SpotifyService) CurrentUser(ctx context.Context) (*models.PrivateUser, error) {
	var user models.PrivateUser
	if err := s.get(ctx, "me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// User retrieves a public user profile.
func (s *SpotifyService) User(ctx context.Context, userID string) (*models.PublicUser, error) {
	id, err := segment("user", userID)
	if err != nil {
		return nil, err
	}

	var user models.PublicUser
	if err := s.get(ctx, "users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func topQuery(timeRange string, opts PageOpts) (map[string]string, error) {
	q := opts.query("")
	switch timeRange {
	case "":
	case "short_term", "medium_term", "long_term":
		q["time_range"] = timeRange
	default:
		return nil, fmt.Errorf("%w: time range %q", shared.ErrInvalidArgument, timeRange)
	}
	return q, nil
}

// TopTracks retrieves the user's most played tracks over timeRange (short_term, medium_term, long_term).
func (s *SpotifyService) TopTracks(ctx context.Context, timeRange string, opts PageOpts) (*models.Paging[models.Track], error) {
	q, err := topQuery(timeRange, opts)
	if err != nil {
		return nil, err
	}

	var page models.Paging[models.Track]
	if err := s.get(ctx, "me/top/tracks", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TopArtists retrieves the user's most played artists over timeRange.
func (s *SpotifyService) TopArtists(ctx context.Context, timeRange string, opts PageOpts) (*models.Paging[models.Artist], error) {
	q, err := topQuery(timeRange, opts)
	if err != nil {
		return nil, err
	}

	var page models.Paging[models.Artist]
	if err := s.get(ctx, "me/top/artists", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FollowPlaylist adds the playlist to the user's library, publicly listed when public is set.
func (s *SpotifyService) FollowPlaylist(ctx context.Context, playlistID string, public bool) error {
	id, err := segment("playlist", playlistID)
	if err != nil {
		return err
	}

	body := map[string]bool{"public": public}
	_, err = s.call(ctx, http.MethodPut, "playlists/"+id+"/followers", nil, body, nil)
	return err
}

// UnfollowPlaylist removes the playlist from the user's library.
func (s *SpotifyService) UnfollowPlaylist(ctx context.Context, playlistID string) error {
	id, err := segment("playlist", playlistID)
	if err != nil {
		return err
	}

	_, err = s.call(ctx, http.MethodDelete, "playlists/"+id+"/followers", nil, nil, nil)
	return err
}

// FollowedArtists retrieves one cursor page of followed artists, starting after the given artist ID.
func (s *SpotifyService) FollowedArtists(ctx context.Context, after string, limit int) (*models.CursorPaging[models.Artist], error) {
	q := map[string]string{"type": "artist"}
	if after != "" {
		q["after"] = after
	}
	if limit > 0 {
		q["limit"] = strconv.Itoa(min(limit, maxPageLimit))
	}

	var resp models.FollowedArtists
	if err := s.get(ctx, "me/following", q, &resp); err != nil {
		return nil, err
	}
	return &resp.Artists, nil
}
