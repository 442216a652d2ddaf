package models

import "fmt"

// ErrorObject is the body of a regular Web API error.
type ErrorObject struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope every non-player error is wrapped in.
type ErrorResponse struct {
	Error ErrorObject `json:"error"`
}

// PlayerError is the body of a player endpoint error; Reason is one of the PlayerReason constants.
type PlayerError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// PlayerErrorResponse is the envelope of a player error.
type PlayerErrorResponse struct {
	Error PlayerError `json:"error"`
}

// Player error reasons.
const (
	PlayerReasonNoPrevTrack           = "NO_PREV_TRACK"
	PlayerReasonNoNextTrack           = "NO_NEXT_TRACK"
	PlayerReasonNoSpecificTrack       = "NO_SPECIFIC_TRACK"
	PlayerReasonAlreadyPaused         = "ALREADY_PAUSED"
	PlayerReasonNotPaused             = "NOT_PAUSED"
	PlayerReasonNotPlayingLocally     = "NOT_PLAYING_LOCALLY"
	PlayerReasonNotPlayingTrack       = "NOT_PLAYING_TRACK"
	PlayerReasonNotPlayingContext     = "NOT_PLAYING_CONTEXT"
	PlayerReasonEndlessContext        = "ENDLESS_CONTEXT"
	PlayerReasonContextDisallow       = "CONTEXT_DISALLOW"
	PlayerReasonAlreadyPlaying        = "ALREADY_PLAYING"
	PlayerReasonRateLimited           = "RATE_LIMITED"
	PlayerReasonRemoteControlDisallow = "REMOTE_CONTROL_DISALLOW"
	PlayerReasonDeviceNotControllable = "DEVICE_NOT_CONTROLLABLE"
	PlayerReasonVolumeControlDisallow = "VOLUME_CONTROL_DISALLOW"
	PlayerReasonNoActiveDevice        = "NO_ACTIVE_DEVICE"
	PlayerReasonPremiumRequired       = "PREMIUM_REQUIRED"
	PlayerReasonUnknown               = "UNKNOWN"
)

func (e PlayerError) String() string {
	if e.Reason == "" {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d: %s (%s)", e.Status, e.Message, e.Reason)
}
