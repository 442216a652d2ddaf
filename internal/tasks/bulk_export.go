package tasks

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/shared"
)

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: spotify_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5, max: 10)
	RateLimit  float64 // Playlist fetches per second (default: 5)
	AllItems   bool    // Follow item pages past the first
}

const (
	defaultWorkers   = 5
	maxWorkers       = 10
	defaultRateLimit = 5.0
	manifestName     = "export_manifest.json"
)

type exportJob struct {
	index      int
	total      int
	playlistID string
}

type exportOutcome struct {
	index  int
	result formatter.PlaylistExportResult
}

// BulkExport exports multiple playlists concurrently with rate limiting and progress tracking.
//
// Failures are recorded per playlist and never abort the run. A manifest summarizing the results is
// written to {OutputDir}/export_manifest.json.
func (e *PlaylistEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []string,
	opts BulkExportOpts,
) (*formatter.BulkExportResult, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	format, err := formatter.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	opts.Format = format

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("spotify_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	opts.NumWorkers = min(opts.NumWorkers, maxWorkers)
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &formatter.BulkExportResult{
		TotalPlaylists:  len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]formatter.PlaylistExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(ids))
	results := make(chan exportOutcome, len(ids))

	for i, id := range ids {
		jobs <- exportJob{index: i, total: len(ids), playlistID: id}
	}
	close(jobs)

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, results, prog, opts)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]exportOutcome, 0, len(ids))
	for res := range results {
		outcomes = append(outcomes, res)

		if res.result.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(len(outcomes), len(ids), res.result.PlaylistName, len(res.result.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(len(outcomes), len(ids), res.result.PlaylistName, res.result.Error))
		}
	}

	slices.SortFunc(outcomes, func(a, b exportOutcome) int { return cmp.Compare(a.index, b.index) })
	for _, o := range outcomes {
		result.Results = append(result.Results, o.result)
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	if err := formatter.WriteBulkExportManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted: %w", err)
	}
	return result, nil
}

// exportWorker is a worker goroutine that exports playlists from the jobs channel.
//
// Every job yields exactly one outcome, including jobs drained after cancellation.
func (e *PlaylistEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan exportJob,
	results chan<- exportOutcome,
	prog chan<- ProgressUpdate,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		results <- exportOutcome{
			index:  job.index,
			result: e.exportSinglePlaylist(ctx, limiter, job, prog, opts),
		}
	}
}

// exportSinglePlaylist fetches one playlist and writes it in the requested format.
func (e *PlaylistEngine) exportSinglePlaylist(
	ctx context.Context,
	limiter *rate.Limiter,
	j exportJob,
	prog chan<- ProgressUpdate,
	opts BulkExportOpts,
) formatter.PlaylistExportResult {
	result := formatter.PlaylistExportResult{
		PlaylistID:   j.playlistID,
		PlaylistName: fmt.Sprintf("Unknown (%s)", j.playlistID),
		Files:        []string{},
	}

	if err := limiter.Wait(ctx); err != nil {
		result.Error = fmt.Errorf("rate limiter: %w", err)
		return result
	}

	export, err := e.FetchPlaylist(ctx, j.playlistID, opts.AllItems, nil)
	if export != nil {
		result.PlaylistName = export.Name
	}
	if err != nil {
		result.Error = err
		return result
	}

	e.sendProgress(prog, exportingPlaylistUpdate(j.index+1, j.total, export.Name))

	files, err := formatter.WriteExport(export, opts.Format, opts.OutputDir)
	if err != nil {
		result.Error = err
		return result
	}

	result.Files = files
	result.Success = true
	return result
}
