package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/port"
)

var repo = domain.RepositoryRef{Owner: "acme", Name: "widgets"}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token", WithBaseURL(srv.URL))
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListContributorsPaginates(t *testing.T) {
	// Two full pages then a short one; the client must request all three
	// and stop.
	var pagesServed []int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/contributors", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pagesServed = append(pagesServed, page)

		size := perPage
		if page == 3 {
			size = 7
		}
		batch := make([]contributorWire, size)
		for i := range batch {
			batch[i] = contributorWire{Login: fmt.Sprintf("user-%d-%d", page, i), Contributions: 1}
		}
		writeJSON(t, w, batch)
	}))

	got, err := c.ListContributors(context.Background(), repo)

	require.NoError(t, err)
	assert.Len(t, got, 2*perPage+7)
	assert.Equal(t, []int{1, 2, 3}, pagesServed)
}

func TestPaginationStopsAtCeiling(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		batch := make([]contributorWire, perPage) // never a short page
		writeJSON(t, w, batch)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("", WithBaseURL(srv.URL), WithPageCeiling(3))
	got, err := c.ListContributors(context.Background(), repo)

	require.NoError(t, err)
	assert.Equal(t, 3, requests)
	assert.Len(t, got, 3*perPage)
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusUnauthorized, want: port.ErrUnauthorized},
		{status: http.StatusForbidden, want: port.ErrRateLimited},
		{status: http.StatusTooManyRequests, want: port.ErrRateLimited},
		{status: http.StatusNotFound, want: port.ErrNotFound},
		{status: http.StatusInternalServerError, want: port.ErrTransient},
		{status: http.StatusBadGateway, want: port.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := c.GetPullRequest(context.Background(), repo, 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListContributorsMissingRepository(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.ListContributors(context.Background(), repo)
	assert.ErrorIs(t, err, port.ErrRepositoryNotFound)
}

func TestEmptyTokenSendsNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, userWire{Login: "alice"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient("", WithBaseURL(srv.URL))
	_, err := c.GetUser(context.Background(), "alice")
	require.NoError(t, err)
}

func TestGetPullRequest(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/pulls/42", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"id":        int64(9000),
			"number":    42,
			"title":     "Add widget cache",
			"html_url":  "https://github.com/acme/widgets/pull/42",
			"user":      map[string]any{"login": "alice"},
			"labels":    []map[string]any{{"name": "feature"}, {"name": "high priority"}},
			"merged_at": "2026-03-01T12:00:00Z",
		})
	}))

	pr, err := c.GetPullRequest(context.Background(), repo, 42)

	require.NoError(t, err)
	assert.Equal(t, 42, pr.Number)
	assert.Equal(t, "alice", pr.Author)
	assert.Equal(t, repo, pr.Repo)
	assert.Equal(t, []string{"feature", "high priority"}, pr.Labels)
	assert.True(t, pr.Merged())
}

func TestSearchMergedPullRequests(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/issues", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		writeJSON(t, w, map[string]any{
			"total_count": 2,
			"items": []map[string]any{
				{"number": 7, "repository_url": "https://api.github.com/repos/acme/widgets"},
				{"number": 9, "repository_url": "not-a-repository-url"},
			},
		})
	}))

	refs, err := c.SearchMergedPullRequests(context.Background(), "alice", &repo, 50)

	require.NoError(t, err)
	assert.Equal(t, "repo:acme/widgets author:alice type:pr is:merged", gotQuery)
	// The malformed repository_url hit is dropped.
	require.Len(t, refs, 1)
	assert.Equal(t, domain.PullRequestRef{Repo: repo, Number: 7}, refs[0])
}

func TestSearchMergedPullRequestsHonorsLimit(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]any, perPage)
		for i := range items {
			items[i] = map[string]any{
				"number":         i + 1,
				"repository_url": "https://api.github.com/repos/acme/widgets",
			}
		}
		writeJSON(t, w, map[string]any{"total_count": 1000, "items": items})
	}))

	refs, err := c.SearchMergedPullRequests(context.Background(), "alice", nil, 50)

	require.NoError(t, err)
	assert.Len(t, refs, 50)
}

func TestCountPullRequestCommits(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/pulls/5/commits", r.URL.Path)
		writeJSON(t, w, []commitWire{{SHA: "a"}, {SHA: "b"}, {SHA: "c"}})
	}))

	n, err := c.CountPullRequestCommits(context.Background(), repo, 5)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestListPullRequestFiles(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []fileWire{
			{Filename: "a.go", Additions: 10, Deletions: 2},
			{Filename: "b.go", Additions: 1, Deletions: 0},
		})
	}))

	files, err := c.ListPullRequestFiles(context.Background(), repo, 5)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, domain.FileDiff{Filename: "a.go", Additions: 10, Deletions: 2}, files[0])
}

func TestParseRepositoryURL(t *testing.T) {
	ref, ok := parseRepositoryURL("https://api.github.com/repos/acme/widgets")
	require.True(t, ok)
	assert.Equal(t, repo, ref)

	_, ok = parseRepositoryURL("https://api.github.com/users/acme")
	assert.False(t, ok)
}
