package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/spotx/internal/shared"
	"github.com/desertthunder/spotx/internal/tasks"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

// ExportBulk exports many playlists concurrently and writes a manifest.
//
// Playlist IDs come from --id, or from every playlist of the current user with --all.
func (r *Runner) ExportBulk(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSpotify(); err != nil {
		return err
	}

	ids := cmd.StringSlice("id")
	if cmd.Bool("all") {
		if len(ids) > 0 {
			return fmt.Errorf("%w: cannot combine --id with --all", shared.ErrInvalidArgument)
		}
		playlists, err := r.engine.ListPlaylists(ctx, nil)
		if err != nil {
			return err
		}
		for _, p := range playlists {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: pass at least one --id or --all", shared.ErrMissingArgument)
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  float64(cmd.Float("rate")),
		AllItems:   cmd.Bool("all-items"),
	}

	r.logger.Info("starting bulk export", "playlists", len(ids), "format", opts.Format)
	r.writePlain("Exporting %d playlists...\n\n", len(ids))

	progress := make(chan tasks.ProgressUpdate, 100)
	done := r.printProgress(progress)

	result, err := r.engine.BulkExport(ctx, progress, ids, opts)
	close(progress)
	<-done

	if result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("%s %d succeeded\n", color.GreenString("✓"), result.SuccessfulExports)
	if result.FailedExports > 0 {
		r.writePlain("%s %d failed\n", color.RedString("✗"), result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.PlaylistName, res.Error)
			}
		}
	}
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}

	if err != nil {
		return err
	}
	if result.FailedExports > 0 && result.SuccessfulExports == 0 {
		return errors.New("every playlist export failed")
	}
	return nil
}
