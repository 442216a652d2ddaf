package ui

import (
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/tasks"
)

type playlistsFetchedMsg struct {
	playlists []models.SimplifiedPlaylist
	err       error
}

type tracksFetchedMsg struct {
	playlist *models.PlaylistExport
	err      error
}

type devicesFetchedMsg struct {
	devices []models.Device
	err     error
}

// playbackMsg reports the outcome of a play or transfer command.
type playbackMsg struct {
	status string
	err    error
}

type progressUpdateMsg tasks.ProgressUpdate

type exportCompleteMsg struct {
	files []string
	err   error
}
