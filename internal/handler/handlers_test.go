package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/scout"
	"github.com/talentlens/talentlens/internal/service"
)

// noopForge satisfies port.ForgeProvider with empty results; handler tests
// only exercise the HTTP surface, not the pipeline.
type noopForge struct{}

func (noopForge) ListContributors(ctx context.Context, ref domain.RepositoryRef) ([]domain.Contributor, error) {
	return nil, nil
}

func (noopForge) SearchMergedPullRequests(ctx context.Context, login string, ref *domain.RepositoryRef, limit int) ([]domain.PullRequestRef, error) {
	return nil, nil
}

func (noopForge) GetPullRequest(ctx context.Context, ref domain.RepositoryRef, number int) (*domain.PullRequest, error) {
	return &domain.PullRequest{}, nil
}

func (noopForge) ListPullRequestFiles(ctx context.Context, ref domain.RepositoryRef, number int) ([]domain.FileDiff, error) {
	return nil, nil
}

func (noopForge) CountPullRequestCommits(ctx context.Context, ref domain.RepositoryRef, number int) (int, error) {
	return 0, nil
}

func (noopForge) GetUser(ctx context.Context, login string) (*domain.UserProfile, error) {
	return &domain.UserProfile{Login: login}, nil
}

func (noopForge) ListAuthoredMergedPullRequests(ctx context.Context, login string) ([]domain.PullRequest, error) {
	return nil, nil
}

func newTestApp(t *testing.T) (*fiber.App, *scout.Tracker) {
	t.Helper()

	forge := noopForge{}
	tracker := scout.NewTracker()
	runner := scout.NewRunner(
		service.NewDiscoveryService(forge, 25, 50),
		service.NewAnalyzerService(forge, 2, 3),
		service.NewProfileService(forge),
		tracker,
		nil,
	)

	app := fiber.New()
	api := app.Group("/api/v1")
	NewScoutHandler(runner).Register(api)
	NewJobsHandler(tracker).Register(api)
	return app, tracker
}

func TestStartRepositoriesAccepted(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/scout/repositories",
		strings.NewReader(`{"urls":["https://github.com/acme/widgets"]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var body struct {
		JobID   string `json:"job_id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.JobID)
	assert.Equal(t, "analysis started", body.Message)
}

func TestStartRepositoriesValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty urls", body: `{"urls":[]}`},
		{name: "missing urls", body: `{}`},
		{name: "malformed json", body: `{"urls":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)

			req := httptest.NewRequest("POST", "/api/v1/scout/repositories", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestStartContributorsAccepted(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/scout/contributors",
		strings.NewReader(`{"logins":["alice"]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
}

func TestStartContributorsEmptyLogins(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/scout/contributors", strings.NewReader(`{"logins":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetJobStatus(t *testing.T) {
	app, tracker := newTestApp(t)
	tracker.Create("job-1", func() {})
	tracker.Progress("job-1", 30, "acme/widgets", "working")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs/job-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var job domain.Job
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&job))
	assert.Equal(t, domain.JobStatusProcessing, job.Status)
	assert.Equal(t, 30.0, job.Progress)
}

func TestGetJobStatusUnknown(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCancelJob(t *testing.T) {
	app, tracker := newTestApp(t)
	tracker.Create("job-1", func() {})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/jobs/job-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCancelFinishedJobConflicts(t *testing.T) {
	app, tracker := newTestApp(t)
	tracker.Create("job-1", func() {})
	tracker.Complete("job-1", nil, "done")

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/jobs/job-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestStreamTerminalJobShortCircuits(t *testing.T) {
	app, tracker := newTestApp(t)
	tracker.Create("job-1", func() {})
	tracker.Complete("job-1", []domain.ContributorAnalysis{}, "done")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs/job-1/stream", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
}
