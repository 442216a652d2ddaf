package models

import "time"

// PlaylistTracksRef points at a playlist's items without listing them.
type PlaylistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SimplifiedPlaylist is the playlist object returned by list and search endpoints.
type SimplifiedPlaylist struct {
	Collaborative bool              `json:"collaborative"`
	Description   *string           `json:"description"`
	ExternalURLs  ExternalURLs      `json:"external_urls"`
	Href          string            `json:"href"`
	ID            string            `json:"id"`
	Images        []Image           `json:"images"`
	Name          string            `json:"name"`
	Owner         PublicUser        `json:"owner"`
	Public        *bool             `json:"public"`
	SnapshotID    string            `json:"snapshot_id"`
	Tracks        PlaylistTracksRef `json:"tracks"`
	Type          string            `json:"type"`
	URI           string            `json:"uri"`
}

// Playlist is a full playlist object. Tracks is the first page of its items.
type Playlist struct {
	Collaborative bool                 `json:"collaborative"`
	Description   *string              `json:"description"`
	ExternalURLs  ExternalURLs         `json:"external_urls"`
	Followers     Followers            `json:"followers"`
	Href          string               `json:"href"`
	ID            string               `json:"id"`
	Images        []Image              `json:"images"`
	Name          string               `json:"name"`
	Owner         PublicUser           `json:"owner"`
	Public        *bool                `json:"public"`
	SnapshotID    string               `json:"snapshot_id"`
	Tracks        Paging[PlaylistItem] `json:"tracks"`
	Type          string               `json:"type"`
	URI           string               `json:"uri"`
}

// PlaylistItem is one entry of a playlist. AddedAt and AddedBy are null on very old playlists.
type PlaylistItem struct {
	AddedAt *string     `json:"added_at"`
	AddedBy *PublicUser `json:"added_by"`
	IsLocal bool        `json:"is_local"`
	Track   Item        `json:"track"`
}

// AddedTime parses AddedAt; the zero time is returned when it is absent or malformed.
func (p PlaylistItem) AddedTime() time.Time {
	return parseTimestamp(p.AddedAt)
}

// FeaturedPlaylists wraps the browse featured-playlists and category-playlists responses.
type FeaturedPlaylists struct {
	Message   string                     `json:"message,omitempty"`
	Playlists Paging[SimplifiedPlaylist] `json:"playlists"`
}
