package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/desertthunder/spotx/internal/tasks"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

// PlaylistShow prints a playlist's metadata and its first page of items.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	playlist, err := r.spotify.Playlist(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	export := models.NewPlaylistExport(playlist)
	r.writePlainHeader(export.Name)
	if export.Description != "" {
		r.writePlain("%s\n", export.Description)
	}
	r.writePlain("Owner: %s\n", export.Owner)
	r.writePlain("Visibility: %s\n", shared.VisibilityString(export.Public))
	r.writePlain("Tracks: %d\n", export.Total)
	r.writePlain("Snapshot: %s\n\n", export.SnapshotID)
	formatter.TracksTable(r.output, export.Items)
	if export.HasMore {
		r.writePlain("Showing %d of %d items, use 'playlist items --all' for the rest\n", len(export.Items), export.Total)
	}
	return nil
}

// PlaylistItems prints one page of a playlist's items, or every page with --all.
func (r *Runner) PlaylistItems(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	useJSON := cmd.Bool("json")

	var rows []models.ExportRow
	if cmd.Bool("all") {
		export, err := r.engine.FetchPlaylist(ctx, id, true, nil)
		if err != nil {
			return err
		}
		rows = export.Items
	} else {
		opts := services.PageOpts{Limit: int(cmd.Int("limit")), Offset: int(cmd.Int("offset"))}
		page, err := r.spotify.PlaylistItems(ctx, id, opts)
		if err != nil {
			return err
		}
		if useJSON {
			return r.writeJSON(page, true)
		}
		export := &models.PlaylistExport{}
		export.Append(page.Items...)
		rows = export.Items
	}

	if useJSON {
		return r.writeJSON(rows, true)
	}
	formatter.TracksTable(r.output, rows)
	return nil
}

// PlaylistExport writes one playlist to disk in the requested format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	r.logger.Info("exporting playlist", "id", id, "format", format)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := r.printProgress(progress)

	export, err := r.engine.FetchPlaylist(ctx, id, cmd.Bool("all"), progress)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	files, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlain("%s Exported %s (%d items)\n", color.GreenString("✓"), export.Name, len(export.Items))
	for _, f := range files {
		r.writePlain("  %s\n", f)
	}
	if export.HasMore {
		r.writePlain("%s %d of %d items exported, pass --all to follow every page\n",
			color.YellowString("!"), len(export.Items), export.Total)
	}
	return nil
}

// PlaylistList prints the current user's playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	var playlists []models.SimplifiedPlaylist
	if cmd.Bool("all") {
		var err error
		if playlists, err = r.engine.ListPlaylists(ctx, nil); err != nil {
			return err
		}
	} else {
		opts := services.PageOpts{Limit: int(cmd.Int("limit")), Offset: int(cmd.Int("offset"))}
		page, err := r.spotify.CurrentUserPlaylists(ctx, opts)
		if err != nil {
			return err
		}
		playlists = page.Items
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}
	formatter.PlaylistsTable(r.output, playlists)
	return nil
}

// PlaylistCreate creates a playlist owned by the current user.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	user, err := r.spotify.CurrentUser(ctx)
	if err != nil {
		return err
	}

	public := cmd.Bool("public")
	req := models.CreatePlaylistRequest{Name: name, Public: &public, Description: cmd.String("description")}
	if cmd.Bool("collaborative") {
		collaborative := true
		req.Collaborative = &collaborative
	}

	playlist, err := r.spotify.CreatePlaylist(ctx, user.ID, req)
	if err != nil {
		return err
	}

	r.logger.Info("created playlist", "id", playlist.ID, "name", playlist.Name)
	r.writePlain("%s Created %s (%s)\n", color.GreenString("✓"), playlist.Name, playlist.ID)
	return nil
}

// PlaylistAdd appends (or inserts at --position) items to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	uris := cmd.StringArgs("uris")

	var position *int
	if cmd.IsSet("position") {
		p := int(cmd.Int("position"))
		position = &p
	}

	snapshot, err := r.spotify.AddPlaylistItems(ctx, id, uris, position)
	if err != nil {
		return err
	}

	r.writePlain("%s Added %d items (snapshot %s)\n", color.GreenString("✓"), len(uris), snapshot)
	return nil
}

// PlaylistRemove removes every occurrence of the given items from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	uris := cmd.StringArgs("uris")

	snapshot, err := r.spotify.RemovePlaylistItems(ctx, id, uris, cmd.String("snapshot"))
	if err != nil {
		return err
	}

	r.writePlain("%s Removed %d items (snapshot %s)\n", color.GreenString("✓"), len(uris), snapshot)
	return nil
}

// printProgress writes progress updates until the channel is closed, then closes the returned channel.
func (r *Runner) printProgress(progress <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			switch update.Phase {
			case tasks.FetchPlaylist, tasks.FetchPlaylists:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FetchItems:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()
	return done
}
