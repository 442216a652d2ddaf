package services

import (
	"context"
	"net/http"

	"github.com/desertthunder/spotx/internal/models"
)

// SavedTracks retrieves one page of the user's liked songs.
func (s *SpotifyService) SavedTracks(ctx context.Context, opts PageOpts) (*models.Paging[models.SavedTrack], error) {
	var page models.Paging[models.SavedTrack]
	if err := s.get(ctx, "me/tracks", opts.query(s.market), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SavedAlbums retrieves one page of the user's saved albums.
func (s *SpotifyService) SavedAlbums(ctx context.Context, opts PageOpts) (*models.Paging[models.SavedAlbum], error) {
	var page models.Paging[models.SavedAlbum]
	if err := s.get(ctx, "me/albums", opts.query(s.market), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SaveTracks adds up to 50 tracks to the user's library.
func (s *SpotifyService) SaveTracks(ctx context.Context, trackIDs []string) error {
	if _, err := joinIDs(trackIDs, 50); err != nil {
		return err
	}

	_, err := s.call(ctx, http.MethodPut, "me/tracks", nil, models.IDsRequest{IDs: trackIDs}, nil)
	return err
}

// RemoveSavedTracks removes up to 50 tracks from the user's library.
func (s *SpotifyService) RemoveSavedTracks(ctx context.Context, trackIDs []string) error {
	if _, err := joinIDs(trackIDs, 50); err != nil {
		return err
	}

	_, err := s.call(ctx, http.MethodDelete, "me/tracks", nil, models.IDsRequest{IDs: trackIDs}, nil)
	return err
}

// CheckSavedTracks reports, in order, whether each track is in the user's library.
func (s *SpotifyService) CheckSavedTracks(ctx context.Context, trackIDs []string) ([]bool, error) {
	ids, err := joinIDs(trackIDs, 50)
	if err != nil {
		return nil, err
	}

	var saved []bool
	if err := s.get(ctx, "me/tracks/contains", map[string]string{"ids": ids}, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}
