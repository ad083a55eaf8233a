package models

import (
	"errors"
	"testing"
	"time"
)

func TestSourceConfig(t *testing.T) {
	valid := SourceConfig{
		Kind:      SourceVideoChannel,
		ID:        "UC123",
		Name:      "ChannelX",
		ProjectID: "2300000002",
	}

	t.Run("Validate", func(t *testing.T) {
		t.Run("accepts a complete source", func(t *testing.T) {
			if err := valid.Validate(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("rejects unsupported kind", func(t *testing.T) {
			src := valid
			src.Kind = "podcast"
			if err := src.Validate(); err == nil {
				t.Fatal("expected error for unsupported kind")
			}
		})

		t.Run("rejects missing id", func(t *testing.T) {
			src := valid
			src.ID = ""
			if err := src.Validate(); err == nil {
				t.Fatal("expected error for missing id")
			}
		})

		t.Run("rejects missing name", func(t *testing.T) {
			src := valid
			src.Name = ""
			if err := src.Validate(); err == nil {
				t.Fatal("expected error for missing name")
			}
		})

		t.Run("rejects missing project", func(t *testing.T) {
			src := valid
			src.ProjectID = ""
			if err := src.Validate(); err == nil {
				t.Fatal("expected error for missing project_id")
			}
		})
	})
}

func TestNewTaskPayload(t *testing.T) {
	src := SourceConfig{
		Kind:      SourceVideoChannel,
		ID:        "UC123",
		Name:      "ChannelX",
		ProjectID: "2300000002",
		Labels:    []string{"ChannelX"},
	}
	entry := Entry{
		Title:     "B",
		URL:       "https://youtube.com/watch?v=b",
		Published: time.Date(2024, 2, 1, 18, 30, 0, 0, time.UTC),
		Raw:       "2024-02-01T18:30:00+00:00",
	}

	payload := NewTaskPayload(src, entry)

	if payload.Content != "2024-02-01 - ChannelX - B" {
		t.Errorf("unexpected content: %q", payload.Content)
	}
	if payload.ProjectID != "2300000002" {
		t.Errorf("unexpected project id: %q", payload.ProjectID)
	}
	if len(payload.Labels) != 1 || payload.Labels[0] != "ChannelX" {
		t.Errorf("unexpected labels: %v", payload.Labels)
	}
	if payload.Description != "https://youtube.com/watch?v=b\nPublished: 2024-02-01T18:30:00+00:00" {
		t.Errorf("unexpected description: %q", payload.Description)
	}
	if payload.SectionID != "" {
		t.Errorf("section id should be unset, got %q", payload.SectionID)
	}

	t.Run("description without raw date", func(t *testing.T) {
		e := entry
		e.Raw = ""
		if p := NewTaskPayload(src, e); p.Description != e.URL {
			t.Errorf("expected bare URL description, got %q", p.Description)
		}
	})
}

func TestRunReport(t *testing.T) {
	report := &RunReport{
		Sources: []SourceReport{
			{Source: "A", Created: 2, Skipped: 1},
			{Source: "B", Failed: 3},
			{Source: "C", Err: errors.New("boom")},
		},
	}

	if report.Created() != 2 {
		t.Errorf("expected 2 created, got %d", report.Created())
	}
	if report.Skipped() != 1 {
		t.Errorf("expected 1 skipped, got %d", report.Skipped())
	}
	if report.Failed() != 3 {
		t.Errorf("expected 3 failed, got %d", report.Failed())
	}

	failed := report.FailedSources()
	if len(failed) != 1 || failed[0] != "C" {
		t.Errorf("expected failed sources [C], got %v", failed)
	}
}

func TestWatermark(t *testing.T) {
	if !(Watermark{}).IsZero() {
		t.Error("zero watermark should report IsZero")
	}
	if !(Watermark{LastRun: time.Unix(0, 0)}).IsZero() {
		t.Error("epoch watermark should report IsZero")
	}
	if (Watermark{LastRun: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}).IsZero() {
		t.Error("advanced watermark should not report IsZero")
	}
}
