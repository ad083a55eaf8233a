package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"feedsync/internal/models"
	"feedsync/internal/shared"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Todoist REST v2 endpoint.
	DefaultBaseURL = "https://api.todoist.com/rest/v2"

	defaultTimeout   = 20 * time.Second
	defaultRateLimit = 5.0
)

// Status describes the outcome of a task creation attempt.
type Status string

const (
	StatusCreated Status = "created" // A new task was created remotely
	StatusSkipped Status = "skipped" // A task with identical content already exists
)

// Result is the outcome of [Client.CreateTask].
type Result struct {
	Status Status
	TaskID string // Server-assigned ID, set when Status is StatusCreated
}

// Client provides section and task operations against the Todoist API.
//
// The synchronizer is strictly sequential, so the per-project content cache
// is not guarded by a lock.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger

	// known caches existing task contents per project for the lifetime of the
	// client, so a run lists each project at most once.
	known map[string]map[string]bool
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	Token      string        // Bearer credential, required unless HTTPClient is set
	BaseURL    string        // Defaults to DefaultBaseURL
	Timeout    time.Duration // Per-call timeout, defaults to 20s
	RateLimit  float64       // Requests per second, defaults to 5
	HTTPClient *http.Client  // Overrides the token-authenticated client
	Logger     *log.Logger
}

// NewClient creates a Todoist client authenticated with a static bearer token.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Token == "" && opts.HTTPClient == nil {
		return nil, fmt.Errorf("%w: todoist token is not set", shared.ErrMissingCredentials)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	// The timeout is applied only to the client built here; an injected
	// client keeps whatever timeout its owner configured.
	if opts.HTTPClient == nil {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		opts.HTTPClient = oauth2.NewClient(context.Background(), src)
		opts.HTTPClient.Timeout = opts.Timeout
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		logger:     opts.Logger,
		known:      make(map[string]map[string]bool),
	}, nil
}

// doRequest performs a rate-limited JSON request against the Todoist API.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrRemoteCall, method, path, err)
	}

	apiURL := c.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrRemoteCall, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d", shared.ErrRemoteCall, method, path, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Sections lists all sections in a project.
func (c *Client) Sections(ctx context.Context, projectID string) ([]models.Section, error) {
	query := url.Values{}
	query.Set("project_id", projectID)

	var sections []models.Section
	if err := c.doRequest(ctx, http.MethodGet, "/sections", query, nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// EnsureSection returns the ID of the section with the given name, creating
// it if absent. Matching is exact and case-sensitive; repeated calls with the
// same name never create a duplicate.
func (c *Client) EnsureSection(ctx context.Context, projectID, name string) (string, error) {
	sections, err := c.Sections(ctx, projectID)
	if err != nil {
		return "", err
	}

	for _, section := range sections {
		if section.Name == name {
			c.logger.Debug("section already exists", "name", name, "id", section.ID)
			return section.ID, nil
		}
	}

	var created models.Section
	body := map[string]string{"name": name, "project_id": projectID}
	if err := c.doRequest(ctx, http.MethodPost, "/sections", nil, body, &created); err != nil {
		return "", err
	}

	c.logger.Info("section created", "name", name, "id", created.ID)
	return created.ID, nil
}

// Tasks lists all active tasks in a project.
func (c *Client) Tasks(ctx context.Context, projectID string) ([]models.Task, error) {
	query := url.Values{}
	query.Set("project_id", projectID)

	var tasks []models.Task
	if err := c.doRequest(ctx, http.MethodGet, "/tasks", query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TaskExists reports whether a task with exactly the given content exists in
// the project. The project's task list is fetched once and cached for the
// lifetime of the client.
func (c *Client) TaskExists(ctx context.Context, projectID, content string) (bool, error) {
	contents, ok := c.known[projectID]
	if !ok {
		tasks, err := c.Tasks(ctx, projectID)
		if err != nil {
			return false, err
		}

		contents = make(map[string]bool, len(tasks))
		for _, task := range tasks {
			contents[task.Content] = true
		}
		c.known[projectID] = contents
	}

	return contents[content], nil
}

// CreateTask creates the task unless one with identical content already
// exists in the target project. Duplicates are skipped without a remote
// creation call.
func (c *Client) CreateTask(ctx context.Context, payload models.TaskPayload) (Result, error) {
	exists, err := c.TaskExists(ctx, payload.ProjectID, payload.Content)
	if err != nil {
		return Result{}, err
	}
	if exists {
		c.logger.Debug("task already exists", "content", payload.Content)
		return Result{Status: StatusSkipped}, nil
	}

	var created models.Task
	if err := c.doRequest(ctx, http.MethodPost, "/tasks", nil, payload, &created); err != nil {
		return Result{}, err
	}

	c.known[payload.ProjectID][payload.Content] = true
	c.logger.Info("task created", "content", payload.Content, "id", created.ID)
	return Result{Status: StatusCreated, TaskID: created.ID}, nil
}
