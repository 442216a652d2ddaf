package models

// CreatePlaylistRequest is the body of POST /users/{user_id}/playlists.
type CreatePlaylistRequest struct {
	Name          string `json:"name"`
	Public        *bool  `json:"public,omitempty"`
	Collaborative *bool  `json:"collaborative,omitempty"`
	Description   string `json:"description,omitempty"`
}

// PlaylistDetailsRequest is the body of PUT /playlists/{playlist_id}. Unset fields are left unchanged.
type PlaylistDetailsRequest struct {
	Name          *string `json:"name,omitempty"`
	Public        *bool   `json:"public,omitempty"`
	Collaborative *bool   `json:"collaborative,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// AddItemsRequest is the body of POST /playlists/{playlist_id}/tracks.
type AddItemsRequest struct {
	URIs     []string `json:"uris"`
	Position *int     `json:"position,omitempty"`
}

// URIObject names one item to remove from a playlist.
type URIObject struct {
	URI string `json:"uri"`
}

// RemoveItemsRequest is the body of DELETE /playlists/{playlist_id}/tracks.
type RemoveItemsRequest struct {
	Tracks     []URIObject `json:"tracks"`
	SnapshotID string      `json:"snapshot_id,omitempty"`
}

// ReorderItemsRequest is the body of PUT /playlists/{playlist_id}/tracks used to move a range.
type ReorderItemsRequest struct {
	RangeStart   int    `json:"range_start"`
	InsertBefore int    `json:"insert_before"`
	RangeLength  *int   `json:"range_length,omitempty"`
	SnapshotID   string `json:"snapshot_id,omitempty"`
}

// Offset selects where playback starts inside a context, by position or by URI.
type Offset struct {
	Position *int   `json:"position,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// PlayRequest is the body of PUT /me/player/play. An empty request resumes playback.
type PlayRequest struct {
	ContextURI string   `json:"context_uri,omitempty"`
	URIs       []string `json:"uris,omitempty"`
	Offset     *Offset  `json:"offset,omitempty"`
	PositionMs *int     `json:"position_ms,omitempty"`
}

// TransferRequest is the body of PUT /me/player.
type TransferRequest struct {
	DeviceIDs []string `json:"device_ids"`
	Play      *bool    `json:"play,omitempty"`
}

// IDsRequest is the body of the library save and remove endpoints.
type IDsRequest struct {
	IDs []string `json:"ids"`
}
