package todoist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedsync/internal/models"
	"feedsync/internal/shared"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(ClientOpts{Token: "test-token", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		if _, err := NewClient(ClientOpts{}); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Fatalf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("defaults the base URL", func(t *testing.T) {
		client := newTestClient(t, "")
		if client.baseURL != DefaultBaseURL {
			t.Errorf("expected baseURL %s, got %s", DefaultBaseURL, client.baseURL)
		}
	})

	t.Run("applies the timeout to its own client only", func(t *testing.T) {
		client := newTestClient(t, "")
		if client.httpClient.Timeout != defaultTimeout {
			t.Errorf("expected default timeout %v, got %v", defaultTimeout, client.httpClient.Timeout)
		}

		injected := &http.Client{}
		if _, err := NewClient(ClientOpts{HTTPClient: injected}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if injected.Timeout != 0 {
			t.Errorf("injected client must not be mutated, got timeout %v", injected.Timeout)
		}
	})
}

func TestClientAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Section{})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if _, err := client.Sections(context.Background(), "1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestEnsureSection(t *testing.T) {
	t.Run("returns existing section without creating", func(t *testing.T) {
		posts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				posts++
			}
			if r.URL.Path != "/sections" {
				t.Errorf("expected path /sections, got %s", r.URL.Path)
			}
			if r.URL.Query().Get("project_id") != "1" {
				t.Errorf("expected project_id=1, got %s", r.URL.Query().Get("project_id"))
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]models.Section{
				{ID: "7", Name: "ChannelX", ProjectID: "1"},
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		id, err := client.EnsureSection(context.Background(), "1", "ChannelX")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "7" {
			t.Errorf("expected section id 7, got %s", id)
		}
		if posts != 0 {
			t.Errorf("expected no creation call, got %d", posts)
		}
	})

	t.Run("name matching is case-sensitive and exact", func(t *testing.T) {
		posts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.Method == http.MethodPost {
				posts++
				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				if body["name"] != "ChannelX" || body["project_id"] != "1" {
					t.Errorf("unexpected creation body: %v", body)
				}
				json.NewEncoder(w).Encode(models.Section{ID: "9", Name: "ChannelX", ProjectID: "1"})
				return
			}
			json.NewEncoder(w).Encode([]models.Section{
				{ID: "7", Name: "channelx", ProjectID: "1"},
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		id, err := client.EnsureSection(context.Background(), "1", "ChannelX")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if id != "9" {
			t.Errorf("expected created section id 9, got %s", id)
		}
		if posts != 1 {
			t.Errorf("expected exactly one creation call, got %d", posts)
		}
	})

	t.Run("repeated calls create at most once", func(t *testing.T) {
		posts := 0
		sections := []models.Section{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.Method == http.MethodPost {
				posts++
				sections = append(sections, models.Section{ID: "9", Name: "ChannelX", ProjectID: "1"})
				json.NewEncoder(w).Encode(sections[0])
				return
			}
			json.NewEncoder(w).Encode(sections)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		first, err := client.EnsureSection(context.Background(), "1", "ChannelX")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := client.EnsureSection(context.Background(), "1", "ChannelX")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if first != second {
			t.Errorf("expected the same section id, got %s and %s", first, second)
		}
		if posts != 1 {
			t.Errorf("expected one creation call, got %d", posts)
		}
	})
}

func TestTaskExists(t *testing.T) {
	t.Run("matches exact content only", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]models.Task{
				{ID: "1", Content: "2024-02-01 - ChannelX - B", ProjectID: "1"},
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		exists, err := client.TaskExists(context.Background(), "1", "2024-02-01 - ChannelX - B")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !exists {
			t.Error("expected exact content to exist")
		}

		exists, err = client.TaskExists(context.Background(), "1", "ChannelX - B")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if exists {
			t.Error("partial content should not match")
		}
	})

	t.Run("lists each project once", func(t *testing.T) {
		gets := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gets++
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]models.Task{})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		for i := 0; i < 3; i++ {
			if _, err := client.TaskExists(context.Background(), "1", "anything"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}

		if gets != 1 {
			t.Errorf("expected one listing call, got %d", gets)
		}
	})
}

func TestCreateTask(t *testing.T) {
	payload := models.TaskPayload{
		Content:     "2024-02-01 - ChannelX - B",
		ProjectID:   "1",
		Labels:      []string{"ChannelX"},
		Description: "https://youtube.com/watch?v=b",
	}

	t.Run("skips when identical content exists", func(t *testing.T) {
		posts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.Method == http.MethodPost {
				posts++
				json.NewEncoder(w).Encode(models.Task{ID: "99"})
				return
			}
			json.NewEncoder(w).Encode([]models.Task{
				{ID: "1", Content: payload.Content, ProjectID: "1"},
			})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		result, err := client.CreateTask(context.Background(), payload)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Status != StatusSkipped {
			t.Errorf("expected skipped, got %s", result.Status)
		}
		if posts != 0 {
			t.Errorf("expected no creation call, got %d", posts)
		}
	})

	t.Run("creates when missing and caches the new content", func(t *testing.T) {
		posts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.Method == http.MethodPost {
				posts++
				var got models.TaskPayload
				json.NewDecoder(r.Body).Decode(&got)
				if got.Content != payload.Content {
					t.Errorf("expected content %q, got %q", payload.Content, got.Content)
				}
				json.NewEncoder(w).Encode(models.Task{ID: "42", Content: got.Content, ProjectID: "1"})
				return
			}
			json.NewEncoder(w).Encode([]models.Task{})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		result, err := client.CreateTask(context.Background(), payload)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Status != StatusCreated || result.TaskID != "42" {
			t.Errorf("expected created task 42, got %+v", result)
		}

		// Second call with identical content must be skipped without another POST.
		result, err = client.CreateTask(context.Background(), payload)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Status != StatusSkipped {
			t.Errorf("expected skipped, got %s", result.Status)
		}
		if posts != 1 {
			t.Errorf("expected one creation call, got %d", posts)
		}
	})

	t.Run("remote failure maps to ErrRemoteCall", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		if _, err := client.CreateTask(context.Background(), payload); !errors.Is(err, shared.ErrRemoteCall) {
			t.Fatalf("expected ErrRemoteCall, got %v", err)
		}
	})
}
