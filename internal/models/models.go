package models

import (
	"fmt"
	"time"
)

// SourceKind identifies the type of feed a source is read from.
type SourceKind string

const (
	SourceMusicRelease SourceKind = "music-release"
	SourceVideoChannel SourceKind = "video-channel"
)

// SourceConfig describes one configured feed source.
//
// Loaded once per run from the TOML configuration and immutable afterwards.
type SourceConfig struct {
	Kind      SourceKind `toml:"kind"`       // Feed kind: music-release or video-channel
	ID        string     `toml:"id"`         // Remote feed identifier (artist ID, channel ID)
	Name      string     `toml:"name"`       // Display name, used in task content and section names
	ProjectID string     `toml:"project_id"` // Target project in the task service
	Labels    []string   `toml:"labels"`     // Labels attached to every created task
	Keywords  []string   `toml:"keywords"`   // Optional title filter; empty means no filtering
	Section   bool       `toml:"section"`    // Group tasks under a section named after the source
}

// Validate checks that the source configuration is complete.
func (s SourceConfig) Validate() error {
	if s.Kind != SourceMusicRelease && s.Kind != SourceVideoChannel {
		return fmt.Errorf("source %q: unsupported kind %q", s.Name, s.Kind)
	}
	if s.ID == "" {
		return fmt.Errorf("source %q: missing feed id", s.Name)
	}
	if s.Name == "" {
		return fmt.Errorf("source %s: missing display name", s.ID)
	}
	if s.ProjectID == "" {
		return fmt.Errorf("source %q: missing project_id", s.Name)
	}
	return nil
}

// Entry is a normalized feed entry that passed watermark and keyword filtering.
type Entry struct {
	Title     string    // Entry title as published by the feed
	URL       string    // Canonical link
	Published time.Time // Publication instant, always UTC
	Raw       string    // Raw published string from the feed, kept for task descriptions
}

// TaskPayload is the creation request derived from an Entry and its SourceConfig.
//
// The payload has no identity of its own; the remote service dedupes on the
// exact content string within a project.
type TaskPayload struct {
	Content     string   `json:"content"`
	ProjectID   string   `json:"project_id"`
	SectionID   string   `json:"section_id,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Description string   `json:"description,omitempty"`
}

// NewTaskPayload builds the task payload for an entry.
//
// Content follows the `YYYY-MM-DD - {source} - {title}` convention. Changing
// it defeats dedupe against tasks created under the old convention.
func NewTaskPayload(src SourceConfig, entry Entry) TaskPayload {
	desc := entry.URL
	if entry.Raw != "" {
		desc = fmt.Sprintf("%s\nPublished: %s", entry.URL, entry.Raw)
	}
	return TaskPayload{
		Content:     fmt.Sprintf("%s - %s - %s", entry.Published.Format("2006-01-02"), src.Name, entry.Title),
		ProjectID:   src.ProjectID,
		Labels:      src.Labels,
		Description: desc,
	}
}

// Section is a named grouping of tasks within a project.
type Section struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProjectID string `json:"project_id"`
}

// Task mirrors the fields of a remote task this service cares about.
type Task struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	ProjectID string `json:"project_id"`
	SectionID string `json:"section_id"`
}

// Watermark is the cutoff separating already-synchronized entries from new ones.
type Watermark struct {
	LastRun time.Time // UTC instant of the last successful run
	Display string    // Human-readable local-time rendering for operators
}

// IsZero reports whether the watermark has never been advanced.
func (w Watermark) IsZero() bool {
	return w.LastRun.IsZero() || w.LastRun.Unix() == 0
}

// SourceReport accumulates per-source outcome counts for one run.
type SourceReport struct {
	Source  string // Source display name
	Entries int    // Entries that passed filtering
	Created int    // Tasks created remotely
	Skipped int    // Duplicates skipped
	Failed  int    // Creation calls that failed
	Err     error  // Fatal per-source error (fetch or section failure)
}

// RunReport summarizes a full synchronization run.
type RunReport struct {
	ID        string         // Run identifier
	Started   time.Time      // When the run began
	Finished  time.Time      // When the run ended
	Watermark time.Time      // Watermark the run filtered against
	Next      time.Time      // Candidate watermark, captured before the first fetch
	Advanced  bool           // Whether the watermark was advanced to Next
	DryRun    bool           // Whether creation calls were suppressed
	Sources   []SourceReport // Per-source outcomes, in configuration order
}

// RunRecord is a persisted summary row of a past synchronization run.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Watermark  time.Time
	Created    int
	Skipped    int
	Failed     int
	Status     string
}

// Created returns the total number of tasks created across sources.
func (r *RunReport) Created() int { return r.total(func(s SourceReport) int { return s.Created }) }

// Skipped returns the total number of duplicate tasks skipped across sources.
func (r *RunReport) Skipped() int { return r.total(func(s SourceReport) int { return s.Skipped }) }

// Failed returns the total number of failed creation calls across sources.
func (r *RunReport) Failed() int { return r.total(func(s SourceReport) int { return s.Failed }) }

// FailedSources returns the names of sources that failed outright.
func (r *RunReport) FailedSources() []string {
	var names []string
	for _, s := range r.Sources {
		if s.Err != nil {
			names = append(names, s.Source)
		}
	}
	return names
}

func (r *RunReport) total(f func(SourceReport) int) int {
	n := 0
	for _, s := range r.Sources {
		n += f(s)
	}
	return n
}
