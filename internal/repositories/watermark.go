package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"feedsync/internal/models"
)

// WatermarkRepository persists the single watermark row.
//
// The row is seeded by the initial migration at the Unix epoch; a fresh
// database therefore treats every feed entry as new.
type WatermarkRepository struct {
	db *sql.DB
}

// NewWatermarkRepository creates a new WatermarkRepository with the given database connection
func NewWatermarkRepository(db *sql.DB) *WatermarkRepository {
	return &WatermarkRepository{db: db}
}

// Current loads the watermark of the last successful run.
func (r *WatermarkRepository) Current() (models.Watermark, error) {
	query := `SELECT last_run, last_run_display FROM watermarks WHERE id = 1`

	var (
		lastRun time.Time
		display string
	)
	if err := r.db.QueryRow(query).Scan(&lastRun, &display); err != nil {
		return models.Watermark{}, fmt.Errorf("failed to load watermark: %w", err)
	}

	return models.Watermark{LastRun: lastRun.UTC(), Display: display}, nil
}

// Advance persists a new watermark, keeping a local-time rendering for
// operator visibility.
func (r *WatermarkRepository) Advance(t time.Time) error {
	query := `UPDATE watermarks SET last_run = ?, last_run_display = ? WHERE id = 1`

	result, err := r.db.Exec(query, t.UTC(), t.Local().Format("2006-01-02 15:04"))
	if err != nil {
		return fmt.Errorf("failed to advance watermark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check watermark update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("watermark row missing, run migrations first")
	}

	return nil
}
