// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"time"

	"feedsync/internal/models"
	"feedsync/internal/todoist"
)

// MockSource is a test double for [feeds.Source]
type MockSource struct {
	SourceKind models.SourceKind
	Entries    []models.Entry
	Err        error
	Calls      int
}

func (m *MockSource) Fetch(ctx context.Context, src models.SourceConfig, watermark time.Time) ([]models.Entry, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entries, nil
}

func (m *MockSource) Kind() models.SourceKind { return m.SourceKind }

// MockTaskService is a test double for [sync.TaskService] that dedupes on
// exact content per project, mirroring the real sink's behavior.
type MockTaskService struct {
	Existing     map[string]map[string]bool // project id -> content set
	Sections     map[string]string          // project id + "/" + name -> section id
	CreateCalls  []models.TaskPayload       // Creation calls that reached the remote
	SectionCalls int
	ExistsCalls  int
	CreateErr    error
	SectionErr   error
	ExistsErr    error
}

func NewMockTaskService() *MockTaskService {
	return &MockTaskService{
		Existing: make(map[string]map[string]bool),
		Sections: make(map[string]string),
	}
}

func (m *MockTaskService) EnsureSection(ctx context.Context, projectID, name string) (string, error) {
	if m.SectionErr != nil {
		return "", m.SectionErr
	}
	key := projectID + "/" + name
	if id, ok := m.Sections[key]; ok {
		return id, nil
	}
	m.SectionCalls++
	id := "section-" + name
	m.Sections[key] = id
	return id, nil
}

func (m *MockTaskService) TaskExists(ctx context.Context, projectID, content string) (bool, error) {
	m.ExistsCalls++
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	return m.Existing[projectID][content], nil
}

func (m *MockTaskService) CreateTask(ctx context.Context, payload models.TaskPayload) (todoist.Result, error) {
	if m.CreateErr != nil {
		return todoist.Result{}, m.CreateErr
	}
	if m.Existing[payload.ProjectID][payload.Content] {
		return todoist.Result{Status: todoist.StatusSkipped}, nil
	}
	if m.Existing[payload.ProjectID] == nil {
		m.Existing[payload.ProjectID] = make(map[string]bool)
	}
	m.Existing[payload.ProjectID][payload.Content] = true
	m.CreateCalls = append(m.CreateCalls, payload)
	return todoist.Result{Status: todoist.StatusCreated, TaskID: "task-1"}, nil
}

// MockWatermarkStore is an in-memory [sync.WatermarkStore]
type MockWatermarkStore struct {
	Watermark  models.Watermark
	Advanced   []time.Time
	CurrentErr error
	AdvanceErr error
}

func (m *MockWatermarkStore) Current() (models.Watermark, error) {
	if m.CurrentErr != nil {
		return models.Watermark{}, m.CurrentErr
	}
	return m.Watermark, nil
}

func (m *MockWatermarkStore) Advance(t time.Time) error {
	if m.AdvanceErr != nil {
		return m.AdvanceErr
	}
	m.Advanced = append(m.Advanced, t)
	m.Watermark = models.Watermark{LastRun: t}
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

var _ io.Writer = (*FWriter)(nil)
