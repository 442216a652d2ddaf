package main

import (
	"context"
	"strings"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Me prints the current user's profile.
func (r *Runner) Me(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	user, err := r.spotify.CurrentUser(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	name := user.ID
	if user.DisplayName != nil && *user.DisplayName != "" {
		name = *user.DisplayName
	}
	r.writePlainHeader(name)
	r.writePlain("ID: %s\n", user.ID)
	if user.Email != "" {
		r.writePlain("Email: %s\n", user.Email)
	}
	if user.Country != "" {
		r.writePlain("Country: %s\n", user.Country)
	}
	if user.Product != "" {
		r.writePlain("Product: %s\n", user.Product)
	}
	r.writePlain("Followers: %d\n", user.Followers.Total)
	return nil
}

// Track prints a single catalog track.
func (r *Runner) Track(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	track, err := r.spotify.Track(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, true)
	}

	formatter.TracksTable(r.output, tracksToRows([]models.Track{*track}))
	return nil
}

// Album prints an album with its first page of tracks.
func (r *Runner) Album(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	album, err := r.spotify.Album(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(album, true)
	}

	r.writePlainHeader(album.Name)
	r.writePlain("Released: %s\n", album.ReleaseDate)
	if album.Label != "" {
		r.writePlain("Label: %s\n", album.Label)
	}
	r.writePlain("Tracks: %d\n\n", album.TotalTracks)
	for _, t := range album.Tracks.Items {
		r.writePlain("%2d. %s [%s]\n", t.TrackNumber, t.Name, shared.FormatDuration(t.DurationMs))
	}
	return nil
}

// Artist prints an artist and, with --top, their top tracks.
func (r *Runner) Artist(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	artist, err := r.spotify.Artist(ctx, id)
	if err != nil {
		return err
	}

	var top []models.Track
	if cmd.Bool("top") {
		if top, err = r.spotify.ArtistTopTracks(ctx, id); err != nil {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"artist": artist, "top_tracks": top}, true)
	}

	r.writePlainHeader(artist.Name)
	r.writePlain("Followers: %d\n", artist.Followers.Total)
	r.writePlain("Popularity: %d\n", artist.Popularity)
	if len(artist.Genres) > 0 {
		r.writePlain("Genres: %s\n", strings.Join(artist.Genres, ", "))
	}
	if len(top) > 0 {
		r.writePlain("\n")
		formatter.TracksTable(r.output, tracksToRows(top))
	}
	return nil
}

// Search runs a catalog search and prints one section per requested type.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	types := cmd.StringSlice("type")
	opts := services.PageOpts{Limit: int(cmd.Int("limit")), Offset: int(cmd.Int("offset"))}

	r.logger.Info("searching catalog", "query", query, "types", types)

	result, err := r.spotify.Search(ctx, query, types, opts)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	if result.Tracks != nil {
		r.writePlain("Tracks (%d total)\n", result.Tracks.Total)
		formatter.TracksTable(r.output, tracksToRows(result.Tracks.Items))
	}
	if result.Artists != nil {
		r.writePlain("\nArtists (%d total)\n", result.Artists.Total)
		for _, a := range result.Artists.Items {
			r.writePlain("  %s  %s\n", a.Name, a.ID)
		}
	}
	if result.Albums != nil {
		r.writePlain("\nAlbums (%d total)\n", result.Albums.Total)
		for _, a := range result.Albums.Items {
			r.writePlain("  %s (%s)  %s\n", a.Name, a.ReleaseDate, a.ID)
		}
	}
	if result.Playlists != nil {
		r.writePlain("\nPlaylists (%d total)\n", result.Playlists.Total)
		formatter.PlaylistsTable(r.output, result.Playlists.Items)
	}
	if result.Shows != nil {
		r.writePlain("\nShows (%d total)\n", result.Shows.Total)
		for _, s := range result.Shows.Items {
			r.writePlain("  %s  %s\n", s.Name, s.ID)
		}
	}
	if result.Episodes != nil {
		r.writePlain("\nEpisodes (%d total)\n", result.Episodes.Total)
		for _, e := range result.Episodes.Items {
			r.writePlain("  %s [%s]  %s\n", e.Name, shared.FormatDuration(e.DurationMs), e.ID)
		}
	}
	return nil
}

func tracksToRows(tracks []models.Track) []models.ExportRow {
	rows := make([]models.ExportRow, 0, len(tracks))
	for _, t := range tracks {
		if row, ok := models.NewExportRow(models.PlaylistItem{Track: models.TrackItem(t)}); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
