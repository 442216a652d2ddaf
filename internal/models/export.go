package models

import "strings"

// ExportRow is one playlist entry flattened for file export.
type ExportRow struct {
	Kind       string `json:"kind"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"` // Joined artist names, or the show name for episodes
	Album      string `json:"album,omitempty"`
	DurationMs int    `json:"duration_ms"`
	ISRC       string `json:"isrc,omitempty"`
	URI        string `json:"uri"`
	AddedAt    string `json:"added_at,omitempty"`
	IsLocal    bool   `json:"is_local,omitempty"`
}

// PlaylistExport is a playlist's metadata plus its flattened entries.
type PlaylistExport struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Owner       string      `json:"owner"`
	Public      bool        `json:"public"`
	Total       int         `json:"total"` // Entry count reported by Spotify, may exceed len(Items)
	SnapshotID  string      `json:"snapshot_id"`
	ImageURL    string      `json:"image_url,omitempty"`
	URL         string      `json:"url,omitempty"`
	Items       []ExportRow `json:"items"`

	NextOffset int  `json:"-"` // Offset of the first slot not yet fetched
	HasMore    bool `json:"-"` // Spotify reported a following page
}

// NewPlaylistExport flattens p and the page of items it was fetched with.
func NewPlaylistExport(p *Playlist) *PlaylistExport {
	e := &PlaylistExport{
		ID:         p.ID,
		Name:       p.Name,
		Owner:      p.Owner.ID,
		Public:     p.Public != nil && *p.Public,
		Total:      p.Tracks.Total,
		SnapshotID: p.SnapshotID,
		URL:        p.ExternalURLs.Spotify,
		Items:      make([]ExportRow, 0, len(p.Tracks.Items)),
		NextOffset: p.Tracks.NextOffset(),
		HasMore:    p.Tracks.HasNext(),
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Owner.DisplayName != nil && *p.Owner.DisplayName != "" {
		e.Owner = *p.Owner.DisplayName
	}
	if len(p.Images) > 0 {
		e.ImageURL = p.Images[0].URL
	}

	e.Append(p.Tracks.Items...)
	return e
}

// Append flattens items onto the export, skipping empty slots.
func (e *PlaylistExport) Append(items ...PlaylistItem) {
	for _, item := range items {
		if row, ok := NewExportRow(item); ok {
			e.Items = append(e.Items, row)
		}
	}
}

// NewExportRow flattens one playlist entry. It reports false for entries whose item is null.
func NewExportRow(item PlaylistItem) (ExportRow, bool) {
	row := ExportRow{IsLocal: item.IsLocal}
	if item.AddedAt != nil {
		row.AddedAt = *item.AddedAt
	}

	switch item.Track.Kind {
	case ItemTrack:
		t := item.Track.Track
		names := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			names = append(names, a.Name)
		}
		row.Kind = ItemTrack.String()
		row.ID = t.ID
		row.Title = t.Name
		row.Artist = strings.Join(names, ", ")
		row.Album = t.Album.Name
		row.DurationMs = t.DurationMs
		row.ISRC = t.ExternalIDs.ISRC
		row.URI = t.URI
	case ItemEpisode:
		ep := item.Track.Episode
		row.Kind = ItemEpisode.String()
		row.ID = ep.ID
		row.Title = ep.Name
		row.Artist = ep.Show.Name
		row.DurationMs = ep.DurationMs
		row.URI = ep.URI
	default:
		return ExportRow{}, false
	}
	return row, true
}
