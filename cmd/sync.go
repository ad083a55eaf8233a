package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feedsync/internal/feeds"
	"feedsync/internal/models"
	"feedsync/internal/repositories"
	"feedsync/internal/shared"
	"feedsync/internal/sync"
	"feedsync/internal/todoist"
	"feedsync/internal/ui"

	"github.com/urfave/cli/v3"
)

// Sync runs one synchronization pass over all configured sources.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := config.Validate(); err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := todoist.NewClient(todoist.ClientOpts{
		Token:     config.Credentials.Todoist.APIToken,
		BaseURL:   config.Credentials.Todoist.BaseURL,
		Timeout:   time.Duration(config.Sync.TimeoutSeconds) * time.Second,
		RateLimit: config.Sync.RateLimit,
		Logger:    r.logger,
	})
	if err != nil {
		return err
	}

	engine := sync.NewEngine(sync.EngineOpts{
		Sources:    feeds.NewSources(r.httpClient, r.logger),
		Sink:       client,
		Watermarks: repositories.NewWatermarkRepository(db),
		Logger:     r.logger,
		DryRun:     cmd.Bool("dry-run"),
	})

	progress := make(chan sync.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	report, runErr := engine.Run(ctx, progress, config.Sources)
	close(progress)
	<-done

	if runErr != nil {
		return runErr
	}

	if !report.DryRun {
		if err := repositories.NewRunRepository(db).Create(report); err != nil {
			r.logger.Warn("failed to record run", "error", err)
		}
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(newRunReportView(report), true); err != nil {
			return err
		}
	} else {
		r.writeRunSummary(report)
	}

	if failed := report.FailedSources(); len(failed) > 0 {
		return fmt.Errorf("%w: %s", shared.ErrSourcesFailed, strings.Join(failed, ", "))
	}

	return nil
}

// runReportView is the JSON rendering of a run report.
type runReportView struct {
	ID        string           `json:"id"`
	Started   time.Time        `json:"started"`
	Finished  time.Time        `json:"finished"`
	Watermark time.Time        `json:"watermark"`
	Next      time.Time        `json:"next_watermark"`
	Advanced  bool             `json:"advanced"`
	DryRun    bool             `json:"dry_run,omitempty"`
	Status    string           `json:"status"`
	Sources   []sourceWireView `json:"sources"`
}

type sourceWireView struct {
	Source  string `json:"source"`
	Entries int    `json:"entries"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
	Error   string `json:"error,omitempty"`
}

func newRunReportView(report *models.RunReport) runReportView {
	view := runReportView{
		ID:        report.ID,
		Started:   report.Started,
		Finished:  report.Finished,
		Watermark: report.Watermark,
		Next:      report.Next,
		Advanced:  report.Advanced,
		DryRun:    report.DryRun,
		Status:    repositories.StatusFor(report),
	}

	for _, src := range report.Sources {
		sv := sourceWireView{
			Source:  src.Source,
			Entries: src.Entries,
			Created: src.Created,
			Skipped: src.Skipped,
			Failed:  src.Failed,
		}
		if src.Err != nil {
			sv.Error = src.Err.Error()
		}
		view.Sources = append(view.Sources, sv)
	}

	return view
}

func (r *Runner) writeRunSummary(report *models.RunReport) {
	title := "Sync Summary"
	if report.DryRun {
		title = "Sync Summary (dry run)"
	}
	r.writePlain("%s\n", ui.Title(title))

	for _, src := range report.Sources {
		if src.Err != nil {
			r.writePlain("%s %s: %v\n", ui.Err("✗"), src.Source, src.Err)
			continue
		}
		r.writePlain("%s %s: %d new, %d created, %d skipped, %d failed\n",
			ui.OK("✓"), src.Source, src.Entries, src.Created, src.Skipped, src.Failed)
	}

	if report.Advanced {
		r.writePlain("%s\n", ui.Help(fmt.Sprintf("Watermark advanced to %s", report.Next.Format(time.RFC3339))))
	} else if !report.DryRun {
		r.writePlain("%s\n", ui.Warn("Watermark not advanced"))
	}
}
