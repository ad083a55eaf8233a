package sync

import (
	"fmt"
	"time"
)

// ProgressUpdate represents a progress event during a synchronization run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchFeed Phase = iota
	CreateTasks
	AdvanceWatermark
)

func (p Phase) String() string {
	switch p {
	case FetchFeed:
		return "fetch_feed"
	case CreateTasks:
		return "create_tasks"
	case AdvanceWatermark:
		return "advance_watermark"
	default:
		return ""
	}
}

func fetchFeedUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFeed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching feed: %s...", step, total, name),
	}
}

func entriesFoundUpdate(step, total int, name string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFeed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %d new entries", step, total, name, count),
	}
}

func createTaskUpdate(step, total int, content string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateTasks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, content),
	}
}

func advanceWatermarkUpdate(next time.Time) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AdvanceWatermark,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Advancing watermark to %s", next.Format(time.RFC3339)),
	}
}
