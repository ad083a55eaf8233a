package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"feedsync/internal/models"
)

// Run statuses persisted in the sync_runs table.
const (
	RunStatusOK      = "ok"      // All sources processed, all creations succeeded
	RunStatusPartial = "partial" // Some creation calls failed
	RunStatusFailed  = "failed"  // At least one source failed outright
)

// RunRepository persists per-run summaries for the history command.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a summary row for a completed run.
func (r *RunRepository) Create(report *models.RunReport) error {
	query := `
		INSERT INTO sync_runs (id, started_at, finished_at, watermark, created, skipped, failed, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		report.ID,
		report.Started,
		report.Finished,
		report.Watermark,
		report.Created(),
		report.Skipped(),
		report.Failed(),
		StatusFor(report),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// List retrieves the most recent runs, newest first.
func (r *RunRepository) List(limit int) ([]models.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, started_at, finished_at, watermark, created, skipped, failed, status
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []models.RunRecord
	for rows.Next() {
		var record models.RunRecord
		var started, finished, watermark time.Time

		if err := rows.Scan(&record.ID, &started, &finished, &watermark,
			&record.Created, &record.Skipped, &record.Failed, &record.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		record.StartedAt = started.UTC()
		record.FinishedAt = finished.UTC()
		record.Watermark = watermark.UTC()
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return records, nil
}

// StatusFor derives the persisted status for a run report.
func StatusFor(report *models.RunReport) string {
	if len(report.FailedSources()) > 0 {
		return RunStatusFailed
	}
	if report.Failed() > 0 {
		return RunStatusPartial
	}
	return RunStatusOK
}
