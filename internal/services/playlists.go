package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

const maxPlaylistItems = 100

// Playlist retrieves a playlist together with the first page of its items.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	id, err := segment("playlist", playlistID)
	if err != nil {
		return nil, err
	}

	var playlist models.Playlist
	if err := s.get(ctx, "playlists/"+id, s.marketQuery(), &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// PlaylistItems retrieves one page of a playlist's tracks and episodes.
func (s *SpotifyService) PlaylistItems(ctx context.Context, playlistID string, opts PageOpts) (*models.Paging[models.PlaylistItem], error) {
	id, err := segment("playlist", playlistID)
	if err != nil {
		return nil, err
	}

	q := opts.query(s.market)
	q["additional_types"] = "track,episode"

	var page models.Paging[models.PlaylistItem]
	if err := s.get(ctx, "playlists/"+id+"/tracks", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CurrentUserPlaylists retrieves one page of playlists owned or followed by the current user.
func (s *SpotifyService) CurrentUserPlaylists(ctx context.Context, opts PageOpts) (*models.Paging[models.SimplifiedPlaylist], error) {
	var page models.Paging[models.SimplifiedPlaylist]
	if err := s.get(ctx, "me/playlists", opts.query(""), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UserPlaylists retrieves one page of a user's public playlists.
func (s *SpotifyService) UserPlaylists(ctx context.Context, userID string, opts PageOpts) (*models.Paging[models.SimplifiedPlaylist], error) {
	id, err := segment("user", userID)
	if err != nil {
		return nil, err
	}

	var page models.Paging[models.SimplifiedPlaylist]
	if err := s.get(ctx, "users/"+id+"/playlists", opts.query(""), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePlaylist creates an empty playlist owned by userID.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, userID string, req models.CreatePlaylistRequest) (*models.Playlist, error) {
	id, err := segment("user", userID)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	var playlist models.Playlist
	if _, err := s.call(ctx, http.MethodPost, "users/"+id+"/playlists", nil, req, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ChangePlaylistDetails updates the fields set in req.
func (s *SpotifyService) ChangePlaylistDetails(ctx context.Context, playlistID string, req models.PlaylistDetailsRequest) error {
	id, err := segment("playlist", playlistID)
	if err != nil {
		return err
	}

	_, err = s.call(ctx, http.MethodPut, "playlists/"+id, nil, req, nil)
	return err
}

// AddPlaylistItems inserts up to 100 track or episode URIs, at position when given or appended otherwise.
func (s *SpotifyService) AddPlaylistItems(ctx context.Context, playlistID string, uris []string, position *int) (string, error) {
	id, err := segment("playlist", playlistID)
	if err != nil {
		return "", err
	}
	if err := checkURIs(uris); err != nil {
		return "", err
	}

	var snapshot models.SnapshotID
	req := models.AddItemsRequest{URIs: uris, Position: position}
	if _, err := s.call(ctx, http.MethodPost, "playlists/"+id+"/tracks", nil, req, &snapshot); err != nil {
		return "", err
	}
	return snapshot.SnapshotID, nil
}

// RemovePlaylistItems removes every occurrence of up to 100 URIs. snapshotID may be empty.
func (s *SpotifyService) RemovePlaylistItems(ctx context.Context, playlistID string, uris []string, snapshotID string) (string, error) {
	id, err := segment("playlist", playlistID)
	if err != nil {
		return "", err
	}
	if err := checkURIs(uris); err != nil {
		return "", err
	}

	req := models.RemoveItemsRequest{Tracks: make([]models.URIObject, 0, len(uris)), SnapshotID: snapshotID}
	for _, uri := range uris {
		req.Tracks = append(req.Tracks, models.URIObject{URI: uri})
	}

	var snapshot models.SnapshotID
	if _, err := s.call(ctx, http.MethodDelete, "playlists/"+id+"/tracks", nil, req, &snapshot); err != nil {
		return "", err
	}
	return snapshot.SnapshotID, nil
}

// ReorderPlaylistItems moves a range of items and returns the new snapshot ID.
func (s *SpotifyService) ReorderPlaylistItems(ctx context.Context, playlistID string, req models.ReorderItemsRequest) (string, error) {
	id, err := segment("playlist", playlistID)
	if err != nil {
		return "", err
	}
	if req.RangeStart < 0 || req.InsertBefore < 0 {
		return "", fmt.Errorf("%w: negative playlist position", shared.ErrInvalidArgument)
	}

	var snapshot models.SnapshotID
	if _, err := s.call(ctx, http.MethodPut, "playlists/"+id+"/tracks", nil, req, &snapshot); err != nil {
		return "", err
	}
	return snapshot.SnapshotID, nil
}

// ExportPlaylist fetches a playlist and flattens its first page of items.
func (s *SpotifyService) ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	playlist, err := s.Playlist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return models.NewPlaylistExport(playlist), nil
}

func checkURIs(uris []string) error {
	if len(uris) == 0 {
		return fmt.Errorf("%w: no URIs provided", shared.ErrMissingArgument)
	}
	if len(uris) > maxPlaylistItems {
		return fmt.Errorf("%w: maximum %d URIs allowed, got %d", shared.ErrInvalidArgument, maxPlaylistItems, len(uris))
	}
	return nil
}
