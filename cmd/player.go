package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

// PlayerStatus prints the current playback state.
func (r *Runner) PlayerStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	state, err := r.spotify.PlaybackState(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(state, true)
	}

	if state == nil {
		r.writePlain("Nothing is playing\n")
		return nil
	}

	status := color.YellowString("Paused")
	if state.IsPlaying {
		status = color.GreenString("Playing")
	}

	r.writePlain("%s: %s\n", status, describeItem(state.Item))
	if state.ProgressMs != nil {
		r.writePlain("Position: %s / %s\n", shared.FormatDuration(*state.ProgressMs), shared.FormatDuration(state.Item.DurationMs()))
	}
	r.writePlain("Device: %s (%s)\n", state.Device.Name, state.Device.Type)
	r.writePlain("Shuffle: %t  Repeat: %s\n", state.ShuffleState, state.RepeatState)
	if state.Context != nil {
		r.writePlain("Context: %s\n", state.Context.URI)
	}
	return nil
}

// PlayerDevices lists the devices available for playback.
func (r *Runner) PlayerDevices(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	devices, err := r.spotify.Devices(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(devices, true)
	}
	if len(devices) == 0 {
		r.writePlain("No devices found. Open Spotify on a device and try again.\n")
		return nil
	}
	formatter.DevicesTable(r.output, devices)
	return nil
}

// PlayerPlay starts or resumes playback, optionally of a context or a list of URIs.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	uris := cmd.StringArgs("uris")
	contextURI := cmd.String("context")
	if contextURI != "" && len(uris) > 0 {
		return fmt.Errorf("%w: pass either --context or item URIs, not both", shared.ErrInvalidArgument)
	}

	var req *models.PlayRequest
	if contextURI != "" || len(uris) > 0 {
		req = &models.PlayRequest{ContextURI: contextURI, URIs: uris}
	}

	if err := r.spotify.Play(ctx, cmd.String("device"), req); err != nil {
		return err
	}
	r.writePlain("%s Playback started\n", color.GreenString("▶"))
	return nil
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}
	if err := r.spotify.Pause(ctx, cmd.String("device")); err != nil {
		return err
	}
	r.writePlain("⏸ Paused\n")
	return nil
}

// PlayerNext skips to the next item.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}
	if err := r.spotify.Next(ctx, cmd.String("device")); err != nil {
		return err
	}
	r.writePlain("⏭ Skipped to next\n")
	return nil
}

// PlayerPrevious skips to the previous item.
func (r *Runner) PlayerPrevious(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}
	if err := r.spotify.Previous(ctx, cmd.String("device")); err != nil {
		return err
	}
	r.writePlain("⏮ Back to previous\n")
	return nil
}

// PlayerVolume sets the volume percentage.
func (r *Runner) PlayerVolume(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	percent := int(cmd.IntArg("percent"))
	if err := r.spotify.SetVolume(ctx, percent, cmd.String("device")); err != nil {
		return err
	}
	r.writePlain("Volume set to %d%%\n", percent)
	return nil
}

// PlayerShuffle turns shuffle on or off.
func (r *Runner) PlayerShuffle(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	on, err := parseToggle(cmd.StringArg("state"))
	if err != nil {
		return err
	}
	if err := r.spotify.SetShuffle(ctx, on, cmd.String("device")); err != nil {
		return err
	}
	r.writePlain("Shuffle %s\n", onOff(on))
	return nil
}

// PlayerRepeat sets the repeat mode.
func (r *Runner) PlayerRepeat(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	state := strings.ToLower(cmd.StringArg("state"))
	if err := r.spotify.SetRepeat(ctx, state, cmd.String("device")); err != nil {
		return err
	}
	r.writePlain("Repeat %s\n", state)
	return nil
}

// PlayerTransfer moves playback to another device.
func (r *Runner) PlayerTransfer(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	deviceID := cmd.StringArg("device")
	if deviceID == "" {
		return fmt.Errorf("%w: device ID is required", shared.ErrMissingArgument)
	}
	if err := r.spotify.TransferPlayback(ctx, deviceID, cmd.Bool("play")); err != nil {
		return err
	}
	r.writePlain("%s Playback transferred to %s\n", color.GreenString("✓"), deviceID)
	return nil
}

// PlayerQueue prints the queue, or appends an item when a URI is given.
func (r *Runner) PlayerQueue(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	if uri := cmd.StringArg("uri"); uri != "" {
		if err := r.spotify.AddToQueue(ctx, uri, cmd.String("device")); err != nil {
			return err
		}
		r.writePlain("%s Queued %s\n", color.GreenString("✓"), uri)
		return nil
	}

	queue, err := r.spotify.Queue(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(queue, true)
	}

	if !queue.CurrentlyPlaying.IsZero() {
		r.writePlain("Now: %s\n\n", describeItem(queue.CurrentlyPlaying))
	}
	if len(queue.Queue) == 0 {
		r.writePlain("Queue is empty\n")
		return nil
	}
	for i, item := range queue.Queue {
		r.writePlain("%2d. %s\n", i+1, describeItem(item))
	}
	return nil
}

// PlayerRecent prints recently played tracks.
func (r *Runner) PlayerRecent(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	page, err := r.spotify.RecentlyPlayed(ctx, int(cmd.Int("limit")), time.Time{})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	for _, h := range page.Items {
		played := h.PlayedAt
		if t, err := time.Parse(time.RFC3339, h.PlayedAt); err == nil {
			played = t.Local().Format("Jan 02 15:04")
		}
		r.writePlain("%s  %s\n", color.HiBlackString(played), describeItem(models.TrackItem(h.Track)))
	}
	return nil
}

func describeItem(item models.Item) string {
	switch item.Kind {
	case models.ItemTrack:
		names := make([]string, 0, len(item.Track.Artists))
		for _, a := range item.Track.Artists {
			names = append(names, a.Name)
		}
		return fmt.Sprintf("%s - %s", strings.Join(names, ", "), item.Track.Name)
	case models.ItemEpisode:
		return fmt.Sprintf("%s - %s", item.Episode.Show.Name, item.Episode.Name)
	default:
		return "(nothing)"
	}
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected on or off, got %q", shared.ErrInvalidArgument, s)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
