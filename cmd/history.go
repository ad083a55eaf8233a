package main

import (
	"context"
	"time"

	"feedsync/internal/repositories"
	"feedsync/internal/ui"

	"github.com/urfave/cli/v3"
)

// History lists recent synchronization runs, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := repositories.NewRunRepository(db).List(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	if len(records) == 0 {
		r.writePlain("%s\n", ui.Help("No runs recorded yet"))
		return nil
	}

	r.writePlain("%s\n", ui.Title("Run History"))
	for _, record := range records {
		marker := ui.OK("✓")
		switch record.Status {
		case repositories.RunStatusFailed:
			marker = ui.Err("✗")
		case repositories.RunStatusPartial:
			marker = ui.Warn("!")
		}
		r.writePlain("%s %s  created=%d skipped=%d failed=%d  (%s)\n",
			marker,
			record.StartedAt.Format(time.RFC3339),
			record.Created, record.Skipped, record.Failed,
			record.Status)
	}

	return nil
}
