package main

import (
	"context"
	"fmt"
	"time"

	"feedsync/internal/repositories"
	"feedsync/internal/shared"
	"feedsync/internal/ui"

	"github.com/urfave/cli/v3"
)

// WatermarkShow prints the current watermark.
func (r *Runner) WatermarkShow(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	wm, err := repositories.NewWatermarkRepository(db).Current()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"last_run":         wm.LastRun.Format(time.RFC3339),
			"last_run_display": wm.Display,
		}, true)
	}

	if wm.IsZero() {
		r.writePlain("%s\n", ui.Warn("Watermark never advanced, every entry counts as new"))
		return nil
	}

	r.writePlain("Watermark: %s", wm.LastRun.Format(time.RFC3339))
	if wm.Display != "" {
		r.writePlain(" (%s)", wm.Display)
	}
	r.writePlain("\n")
	return nil
}

// WatermarkSet overrides the watermark with an operator-supplied timestamp.
func (r *Runner) WatermarkSet(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("timestamp")
	if raw == "" {
		return fmt.Errorf("%w: timestamp (RFC 3339)", shared.ErrMissingArgument)
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not an RFC 3339 timestamp: %v", shared.ErrInvalidInput, raw, err)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewWatermarkRepository(db).Advance(t); err != nil {
		return err
	}

	r.logger.Info("watermark set", "last_run", t.UTC().Format(time.RFC3339))
	return nil
}
