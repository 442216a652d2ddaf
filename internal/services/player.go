package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

// Repeat modes accepted by [SpotifyService.SetRepeat].
const (
	RepeatTrack   = "track"
	RepeatContext = "context"
	RepeatOff     = "off"
)

// deviceQuery targets deviceID, or the active device when empty.
func deviceQuery(deviceID string) map[string]string {
	q := map[string]string{}
	if deviceID != "" {
		q["device_id"] = deviceID
	}
	return q
}

// PlaybackState retrieves the full player state. It returns nil when nothing is playing on any device.
func (s *SpotifyService) PlaybackState(ctx context.Context) (*models.CurrentlyPlayingContext, error) {
	q := PageOpts{}.query(s.market)
	q["additional_types"] = "track,episode"

	var state models.CurrentlyPlayingContext
	resp, err := s.call(ctx, http.MethodGet, "me/player", q, nil, &state)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil
	}
	return &state, nil
}

// CurrentlyPlaying retrieves the item being played. It returns nil when nothing is playing.
func (s *SpotifyService) CurrentlyPlaying(ctx context.Context) (*models.CurrentlyPlaying, error) {
	q := PageOpts{}.query(s.market)
	q["additional_types"] = "track,episode"

	var playing models.CurrentlyPlaying
	resp, err := s.call(ctx, http.MethodGet, "me/player/currently-playing", q, nil, &playing)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil
	}
	return &playing, nil
}

// Devices lists the user's available Spotify Connect devices.
func (s *SpotifyService) Devices(ctx context.Context) ([]models.Device, error) {
	var resp models.Devices
	if err := s.get(ctx, "me/player/devices", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Devices, nil
}

// TransferPlayback moves playback to deviceID and starts it when play is set.
func (s *SpotifyService) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	if deviceID == "" {
		return fmt.Errorf("%w: device ID", shared.ErrMissingArgument)
	}

	req := models.TransferRequest{DeviceIDs: []string{deviceID}, Play: &play}
	_, err := s.call(ctx, http.MethodPut, "me/player", nil, req, nil)
	return err
}

// Play starts or resumes playback. A nil req resumes the current context.
func (s *SpotifyService) Play(ctx context.Context, deviceID string, req *models.PlayRequest) error {
	var body any
	if req != nil {
		body = req
	}

	_, err := s.call(ctx, http.MethodPut, "me/player/play", deviceQuery(deviceID), body, nil)
	return err
}

// Pause pauses playback.
func (s *SpotifyService) Pause(ctx context.Context, deviceID string) error {
	_, err := s.call(ctx, http.MethodPut, "me/player/pause", deviceQuery(deviceID), nil, nil)
	return err
}

// Next skips to the next item in the queue.
func (s *SpotifyService) Next(ctx context.Context, deviceID string) error {
	_, err := s.call(ctx, http.MethodPost, "me/player/next", deviceQuery(deviceID), nil, nil)
	return err
}

// Previous skips to the previous item.
func (s *SpotifyService) Previous(ctx context.Context, deviceID string) error {
	_, err := s.call(ctx, http.MethodPost, "me/player/previous", deviceQuery(deviceID), nil, nil)
	return err
}

// Seek moves to positionMs within the current item.
func (s *SpotifyService) Seek(ctx context.Context, positionMs int, deviceID string) error {
	if positionMs < 0 {
		return fmt.Errorf("%w: negative position %d", shared.ErrInvalidArgument, positionMs)
	}

	q := deviceQuery(deviceID)
	q["position_ms"] = strconv.Itoa(positionMs)
	_, err := s.call(ctx, http.MethodPut, "me/player/seek", q, nil, nil)
	return err
}

// SetVolume sets the volume of the device, 0 to 100.
func (s *SpotifyService) SetVolume(ctx context.Context, percent int, deviceID string) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume %d out of range 0-100", shared.ErrInvalidArgument, percent)
	}

	q := deviceQuery(deviceID)
	q["volume_percent"] = strconv.Itoa(percent)
	_, err := s.call(ctx, http.MethodPut, "me/player/volume", q, nil, nil)
	return err
}

// SetRepeat sets the repeat mode to [RepeatTrack], [RepeatContext] or [RepeatOff].
func (s *SpotifyService) SetRepeat(ctx context.Context, state, deviceID string) error {
	switch state {
	case RepeatTrack, RepeatContext, RepeatOff:
	default:
		return fmt.Errorf("%w: repeat state %q", shared.ErrInvalidArgument, state)
	}

	q := deviceQuery(deviceID)
	q["state"] = state
	_, err := s.call(ctx, http.MethodPut, "me/player/repeat", q, nil, nil)
	return err
}

// SetShuffle toggles shuffle.
func (s *SpotifyService) SetShuffle(ctx context.Context, on bool, deviceID string) error {
	q := deviceQuery(deviceID)
	q["state"] = strconv.FormatBool(on)
	_, err := s.call(ctx, http.MethodPut, "me/player/shuffle", q, nil, nil)
	return err
}

// RecentlyPlayed retrieves up to limit tracks played before the given time, or the latest when before is zero.
func (s *SpotifyService) RecentlyPlayed(ctx context.Context, limit int, before time.Time) (*models.CursorPaging[models.PlayHistory], error) {
	q := map[string]string{}
	if limit > 0 {
		q["limit"] = strconv.Itoa(min(limit, maxPageLimit))
	}
	if !before.IsZero() {
		q["before"] = strconv.FormatInt(before.UnixMilli(), 10)
	}

	var page models.CursorPaging[models.PlayHistory]
	if err := s.get(ctx, "me/player/recently-played", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Queue retrieves the current item and the upcoming queue.
func (s *SpotifyService) Queue(ctx context.Context) (*models.Queue, error) {
	var queue models.Queue
	if err := s.get(ctx, "me/player/queue", nil, &queue); err != nil {
		return nil, err
	}
	return &queue, nil
}

// AddToQueue appends a track or episode URI to the queue.
func (s *SpotifyService) AddToQueue(ctx context.Context, uri, deviceID string) error {
	if uri == "" {
		return fmt.Errorf("%w: item URI", shared.ErrMissingArgument)
	}

	q := deviceQuery(deviceID)
	q["uri"] = uri
	_, err := s.call(ctx, http.MethodPost, "me/player/queue", q, nil, nil)
	return err
}
