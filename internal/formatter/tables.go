package formatter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(header)
	t.SetStyle(table.StyleRounded)
	return t
}

// DevicesTable renders Spotify Connect devices with the active one highlighted.
func DevicesTable(w io.Writer, devices []models.Device) {
	t := newTable(w, table.Row{"#", "Name", "Type", "Status", "Volume", "Device ID"})

	for i, device := range devices {
		status := "Inactive"
		if device.IsActive {
			status = color.GreenString("● Active")
		} else if device.IsRestricted {
			status = color.YellowString("Restricted")
		}

		volume := "-"
		if device.VolumePercent != nil {
			volume = fmt.Sprintf("%d%%", *device.VolumePercent)
		}

		id := ""
		if device.ID != nil {
			id = *device.ID
		}

		t.AppendRow(table.Row{
			i + 1,
			color.New(color.Bold).Sprint(device.Name),
			device.Type,
			status,
			volume,
			color.HiBlackString(id),
		})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d devices", len(devices))})
	t.Render()
}

// TracksTable renders flattened playlist entries.
func TracksTable(w io.Writer, rows []models.ExportRow) {
	t := newTable(w, table.Row{"#", "Title", "Artist", "Album", "Duration"})

	for i, row := range rows {
		title := row.Title
		if row.Kind == models.ItemEpisode.String() {
			title = color.CyanString(title)
		}
		t.AppendRow(table.Row{i + 1, title, row.Artist, row.Album, shared.FormatDuration(row.DurationMs)})
	}

	t.Render()
}

// PlaylistsTable renders a page of playlists.
func PlaylistsTable(w io.Writer, playlists []models.SimplifiedPlaylist) {
	t := newTable(w, table.Row{"#", "Name", "Owner", "Tracks", "Visibility", "ID"})

	for i, p := range playlists {
		owner := p.Owner.ID
		if p.Owner.DisplayName != nil && *p.Owner.DisplayName != "" {
			owner = *p.Owner.DisplayName
		}
		t.AppendRow(table.Row{
			i + 1,
			color.New(color.Bold).Sprint(p.Name),
			owner,
			p.Tracks.Total,
			shared.VisibilityString(p.Public != nil && *p.Public),
			color.HiBlackString(p.ID),
		})
	}

	t.Render()
}

// RequestLogTable renders journal entries, failures in red.
func RequestLogTable(w io.Writer, entries []*models.RequestLog) {
	t := newTable(w, table.Row{"When", "Method", "Status", "Duration", "Bytes", "URL"})

	for _, e := range entries {
		status := fmt.Sprint(e.StatusCode())
		if e.ErrorText() != "" {
			status = color.RedString("error")
		} else if !e.OK() {
			status = color.RedString(status)
		} else {
			status = color.GreenString(status)
		}

		t.AppendRow(table.Row{
			e.CreatedAt().Local().Format("2006-01-02 15:04:05"),
			e.Method(),
			status,
			e.Duration().String(),
			e.ResponseBytes(),
			e.URL(),
		})
	}

	t.Render()
}
