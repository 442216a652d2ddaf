package models

import "time"

// Device is a Spotify Connect device. ID and VolumePercent may be null.
type Device struct {
	ID               *string `json:"id"`
	IsActive         bool    `json:"is_active"`
	IsPrivateSession bool    `json:"is_private_session"`
	IsRestricted     bool    `json:"is_restricted"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	VolumePercent    *int    `json:"volume_percent"`
	SupportsVolume   bool    `json:"supports_volume"`
}

// Devices wraps /me/player/devices.
type Devices struct {
	Devices []Device `json:"devices"`
}

// Context is the album, artist, playlist or show that playback was started from.
type Context struct {
	ExternalURLs ExternalURLs `json:"external_urls"`
	Href         string       `json:"href"`
	Type         string       `json:"type"`
	URI          string       `json:"uri"`
}

// Disallows lists the player actions that are currently not permitted.
type Disallows struct {
	InterruptingPlayback  bool `json:"interrupting_playback,omitempty"`
	Pausing               bool `json:"pausing,omitempty"`
	Resuming              bool `json:"resuming,omitempty"`
	Seeking               bool `json:"seeking,omitempty"`
	SkippingNext          bool `json:"skipping_next,omitempty"`
	SkippingPrev          bool `json:"skipping_prev,omitempty"`
	TogglingRepeatContext bool `json:"toggling_repeat_context,omitempty"`
	TogglingShuffle       bool `json:"toggling_shuffle,omitempty"`
	TogglingRepeatTrack   bool `json:"toggling_repeat_track,omitempty"`
	TransferringPlayback  bool `json:"transferring_playback,omitempty"`
}

// Actions wraps [Disallows] inside player state.
type Actions struct {
	Disallows Disallows `json:"disallows"`
}

// CurrentlyPlaying is the response of /me/player/currently-playing.
type CurrentlyPlaying struct {
	Context              *Context `json:"context"`
	Timestamp            int64    `json:"timestamp"`
	ProgressMs           *int     `json:"progress_ms"`
	IsPlaying            bool     `json:"is_playing"`
	Item                 Item     `json:"item"`
	CurrentlyPlayingType string   `json:"currently_playing_type"`
	Actions              Actions  `json:"actions"`
}

// CurrentlyPlayingContext is the full playback state returned by /me/player.
type CurrentlyPlayingContext struct {
	Device               Device   `json:"device"`
	RepeatState          string   `json:"repeat_state"`
	ShuffleState         bool     `json:"shuffle_state"`
	Context              *Context `json:"context"`
	Timestamp            int64    `json:"timestamp"`
	ProgressMs           *int     `json:"progress_ms"`
	IsPlaying            bool     `json:"is_playing"`
	Item                 Item     `json:"item"`
	CurrentlyPlayingType string   `json:"currently_playing_type"`
	Actions              Actions  `json:"actions"`
}

// PlayHistory is one entry of the recently played list.
type PlayHistory struct {
	Track    Track    `json:"track"`
	PlayedAt string   `json:"played_at"`
	Context  *Context `json:"context"`
}

// PlayedTime parses PlayedAt.
func (p PlayHistory) PlayedTime() time.Time { return parseTimestamp(&p.PlayedAt) }

// Queue is the user's playback queue.
type Queue struct {
	CurrentlyPlaying Item   `json:"currently_playing"`
	Queue            []Item `json:"queue"`
}
