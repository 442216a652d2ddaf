package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList prints the most recent journaled requests.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireHistory(); err != nil {
		return err
	}

	criteria := map[string]any{"limit": int(cmd.Int("limit"))}
	if method := cmd.String("method"); method != "" {
		criteria["method"] = strings.ToUpper(method)
	}
	if cmd.Bool("failed") {
		criteria["ok"] = false
	}
	if since := cmd.Duration("since"); since > 0 {
		criteria["since"] = time.Now().Add(-since)
	}

	entries, err := r.history.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}
	if len(entries) == 0 {
		r.writePlain("No requests recorded\n")
		return nil
	}
	formatter.RequestLogTable(r.output, entries)
	return nil
}

// HistoryPrune deletes journal entries older than --older-than.
func (r *Runner) HistoryPrune(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireHistory(); err != nil {
		return err
	}

	age := cmd.Duration("older-than")
	if age <= 0 {
		return fmt.Errorf("%w: --older-than must be positive", shared.ErrInvalidArgument)
	}

	removed, err := r.history.Prune(time.Now().Add(-age))
	if err != nil {
		return err
	}

	r.logger.Info("pruned request history", "removed", removed)
	r.writePlain("Removed %d entries\n", removed)
	return nil
}

// HistoryStats prints aggregate counts for the journal.
func (r *Runner) HistoryStats(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireHistory(); err != nil {
		return err
	}

	stats, err := r.history.Stats()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlainHeader("Request History")
	r.writePlain("Total: %d\n", stats.Total)
	r.writePlain("Failed: %d\n", stats.Failed)
	r.writePlain("Average duration: %.1fms\n", stats.AvgDurationMs)
	return nil
}
