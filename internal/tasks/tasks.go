package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
)

// PlaylistSource is the part of the Spotify client the engine reads playlists through.
//
// [services.SpotifyService] implements it.
type PlaylistSource interface {
	ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error)
	PlaylistItems(ctx context.Context, playlistID string, opts services.PageOpts) (*models.Paging[models.PlaylistItem], error)
	CurrentUserPlaylists(ctx context.Context, opts services.PageOpts) (*models.Paging[models.SimplifiedPlaylist], error)
}

// PlaylistEngine runs multi-request playlist operations on top of the one-page-per-call client.
type PlaylistEngine struct {
	spotify PlaylistSource
}

// NewPlaylistEngine creates a new PlaylistEngine reading from spotify.
func NewPlaylistEngine(spotify PlaylistSource) *PlaylistEngine {
	return &PlaylistEngine{spotify: spotify}
}

// pageSize is the largest page the client requests.
const pageSize = 50

// sendProgress sends a progress update through the channel without blocking.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// FetchPlaylist exports a playlist. When all is set the remaining item pages are requested until
// Spotify reports no next page.
func (e *PlaylistEngine) FetchPlaylist(ctx context.Context, playlistID string, all bool, progress chan<- ProgressUpdate) (*models.PlaylistExport, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	export, err := e.spotify.ExportPlaylist(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}
	e.sendProgress(progress, foundPlaylistUpdate(export))

	if !all {
		return export, nil
	}

	// Offsets count every slot, null items included, so they come from the paging envelope.
	offset, more := export.NextOffset, export.HasMore
	for more {
		page, err := e.spotify.PlaylistItems(ctx, playlistID, services.PageOpts{Limit: pageSize, Offset: offset})
		if err != nil {
			return export, fmt.Errorf("failed to fetch items at offset %d: %w", offset, err)
		}

		export.Append(page.Items...)
		offset = page.NextOffset()
		more = page.HasNext() && len(page.Items) > 0 && offset < export.Total
		e.sendProgress(progress, fetchItemsUpdate(min(offset, export.Total), export.Total, export.Name))
	}

	return export, nil
}

// ListPlaylists pages through every playlist the current user owns or follows.
func (e *PlaylistEngine) ListPlaylists(ctx context.Context, progress chan<- ProgressUpdate) ([]models.SimplifiedPlaylist, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	var playlists []models.SimplifiedPlaylist
	offset := 0
	for {
		page, err := e.spotify.CurrentUserPlaylists(ctx, services.PageOpts{Limit: pageSize, Offset: offset})
		if err != nil {
			return playlists, fmt.Errorf("failed to list playlists: %w", err)
		}

		playlists = append(playlists, page.Items...)
		e.sendProgress(progress, fetchPlaylistsUpdate(len(playlists), page.Total))

		if !page.HasNext() || len(page.Items) == 0 || page.NextOffset() >= page.Total {
			return playlists, nil
		}
		offset = page.NextOffset()
	}
}
