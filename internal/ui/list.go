package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = trackItem{}
	_ list.Item = deviceItem{}
)

// playlistItem wraps [models.SimplifiedPlaylist] to implement [list.Item].
type playlistItem struct {
	playlist models.SimplifiedPlaylist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d tracks", i.playlist.Tracks.Total)
	if i.playlist.Description != nil && *i.playlist.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, *i.playlist.Description)
	}
	return desc
}

// trackItem wraps [models.ExportRow] to implement [list.Item].
type trackItem struct {
	row models.ExportRow
}

func (i trackItem) FilterValue() string { return i.row.Title }
func (i trackItem) Title() string       { return i.row.Title }
func (i trackItem) Description() string {
	desc := i.row.Artist
	if i.row.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.row.Album)
	}
	return fmt.Sprintf("%s • %s", desc, shared.FormatDuration(i.row.DurationMs))
}

// deviceItem wraps [models.Device] to implement [list.Item].
type deviceItem struct {
	device models.Device
}

func (i deviceItem) FilterValue() string { return i.device.Name }
func (i deviceItem) Title() string {
	if i.device.IsActive {
		return "● " + i.device.Name
	}
	return i.device.Name
}
func (i deviceItem) Description() string {
	desc := i.device.Type
	if i.device.VolumePercent != nil {
		desc = fmt.Sprintf("%s • volume %d%%", desc, *i.device.VolumePercent)
	}
	if i.device.IsRestricted {
		desc += " • restricted"
	}
	return desc
}
