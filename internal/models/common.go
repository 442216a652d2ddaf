package models

// Image is a cover, avatar or icon in one size. Dimensions are null when unknown.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// ExternalURLs holds known external URLs for an object.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// ExternalIDs holds known external identifiers (ISRC, EAN, UPC).
type ExternalIDs struct {
	ISRC string `json:"isrc,omitempty"`
	EAN  string `json:"ean,omitempty"`
	UPC  string `json:"upc,omitempty"`
}

// Followers carries the follower count. Href is always null at present.
type Followers struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

// Copyright is a copyright statement; Type is C (copyright) or P (performance).
type Copyright struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Restriction explains why content is unavailable: market, product or explicit.
type Restriction struct {
	Reason string `json:"reason"`
}

// AlbumRestriction, TrackRestriction and EpisodeRestriction share the [Restriction] shape.
type (
	AlbumRestriction   = Restriction
	TrackRestriction   = Restriction
	EpisodeRestriction = Restriction
)

// ResumePoint is the user's most recent position in an episode.
type ResumePoint struct {
	FullyPlayed      bool `json:"fully_played"`
	ResumePositionMs int  `json:"resume_position_ms"`
}

// SnapshotID is returned by playlist mutations and identifies the new playlist version.
type SnapshotID struct {
	SnapshotID string `json:"snapshot_id"`
}
