package sync

import (
	"context"
	"fmt"
	"time"

	"feedsync/internal/feeds"
	"feedsync/internal/models"
	"feedsync/internal/shared"
	"feedsync/internal/todoist"

	"github.com/charmbracelet/log"
)

// TaskService defines the task sink operations the engine depends on.
// This abstraction allows for easier testing and decoupling from the
// concrete Todoist client.
type TaskService interface {
	// EnsureSection returns the ID of the named section, creating it if absent.
	EnsureSection(ctx context.Context, projectID, name string) (string, error)

	// TaskExists reports whether a task with exactly this content exists in the project.
	TaskExists(ctx context.Context, projectID, content string) (bool, error)

	// CreateTask creates the task unless identical content already exists.
	CreateTask(ctx context.Context, payload models.TaskPayload) (todoist.Result, error)
}

// WatermarkStore persists the cutoff timestamp between runs.
type WatermarkStore interface {
	// Current loads the watermark of the last successful run.
	Current() (models.Watermark, error)

	// Advance persists a new watermark.
	Advance(t time.Time) error
}

// Engine orchestrates a synchronization run across configured sources.
//
// Sources are processed strictly sequentially; the only state shared between
// them is the watermark, which is advanced exactly once, after all sources,
// and only if none failed.
type Engine struct {
	sources    map[models.SourceKind]feeds.Source
	sink       TaskService
	watermarks WatermarkStore
	logger     *log.Logger
	dryRun     bool
}

// EngineOpts contains dependencies for creating an Engine.
type EngineOpts struct {
	Sources    map[models.SourceKind]feeds.Source
	Sink       TaskService
	Watermarks WatermarkStore
	Logger     *log.Logger
	DryRun     bool // Suppress all remote creation calls and watermark advance
}

// NewEngine creates an Engine with the provided dependencies.
func NewEngine(opts EngineOpts) *Engine {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Engine{
		sources:    opts.Sources,
		sink:       opts.Sink,
		watermarks: opts.Watermarks,
		logger:     opts.Logger,
		dryRun:     opts.DryRun,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run performs one synchronization pass over the given sources.
//
// Per-source failures (feed unavailable, section creation failed) are
// recorded on the report and do not abort the remaining sources. Run returns
// an error only for conditions that invalidate the whole run, such as a
// watermark load or persist failure.
func (e *Engine) Run(ctx context.Context, progress chan<- ProgressUpdate, sources []models.SourceConfig) (*models.RunReport, error) {
	report := &models.RunReport{
		ID:      shared.GenerateID(),
		Started: time.Now().UTC(),
		DryRun:  e.dryRun,
	}

	wm, err := e.watermarks.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to load watermark: %w", err)
	}
	report.Watermark = wm.LastRun

	// The next watermark is captured before any fetch so entries published
	// while the run is in flight land in the next run instead of being lost.
	next := time.Now().UTC()
	report.Next = next

	e.logger.Info("starting sync", "run", report.ID, "watermark", wm.LastRun, "sources", len(sources))

	for i, src := range sources {
		report.Sources = append(report.Sources, e.syncSource(ctx, progress, src, wm.LastRun, i+1, len(sources)))
	}

	report.Finished = time.Now().UTC()

	if e.dryRun {
		return report, nil
	}

	if failed := report.FailedSources(); len(failed) > 0 {
		e.logger.Warn("watermark not advanced", "failed_sources", failed)
		return report, nil
	}

	e.sendProgress(progress, advanceWatermarkUpdate(next))
	if err := e.watermarks.Advance(next); err != nil {
		return report, fmt.Errorf("failed to advance watermark: %w", err)
	}
	report.Advanced = true

	return report, nil
}

// syncSource processes a single source and returns its report.
func (e *Engine) syncSource(ctx context.Context, progress chan<- ProgressUpdate, src models.SourceConfig, watermark time.Time, step, total int) models.SourceReport {
	sr := models.SourceReport{Source: src.Name}
	logger := shared.WithLogger(e.logger, "source", src.Name)

	e.sendProgress(progress, fetchFeedUpdate(step, total, src.Name))

	source, ok := e.sources[src.Kind]
	if !ok {
		sr.Err = fmt.Errorf("%w: %s", shared.ErrUnknownSourceKind, src.Kind)
		logger.Error("no source implementation", "kind", src.Kind)
		return sr
	}

	entries, err := source.Fetch(ctx, src, watermark)
	if err != nil {
		sr.Err = err
		logger.Error("feed fetch failed", "error", err)
		return sr
	}

	sr.Entries = len(entries)
	e.sendProgress(progress, entriesFoundUpdate(step, total, src.Name, len(entries)))
	logger.Info("feed fetched", "entries", len(entries))

	sectionID := ""
	if src.Section && !e.dryRun && len(entries) > 0 {
		sectionID, err = e.sink.EnsureSection(ctx, src.ProjectID, src.Name)
		if err != nil {
			sr.Err = err
			logger.Error("section resolution failed", "error", err)
			return sr
		}
	}

	for i, entry := range entries {
		payload := models.NewTaskPayload(src, entry)
		payload.SectionID = sectionID

		e.sendProgress(progress, createTaskUpdate(i+1, len(entries), payload.Content))

		// A dry run still dedupes against remote state so the reported
		// counts match what a real run would do. TaskExists only lists.
		if e.dryRun {
			exists, err := e.sink.TaskExists(ctx, payload.ProjectID, payload.Content)
			if err != nil {
				sr.Failed++
				logger.Warn("existence check failed", "content", payload.Content, "error", err)
				continue
			}
			if exists {
				sr.Skipped++
				logger.Info("dry run, duplicate skipped", "content", payload.Content)
				continue
			}
			sr.Created++
			logger.Info("dry run, task not created", "content", payload.Content)
			continue
		}

		result, err := e.sink.CreateTask(ctx, payload)
		if err != nil {
			sr.Failed++
			logger.Warn("task creation failed", "content", payload.Content, "error", err)
			continue
		}

		switch result.Status {
		case todoist.StatusCreated:
			sr.Created++
		case todoist.StatusSkipped:
			sr.Skipped++
		}
	}

	return sr
}
