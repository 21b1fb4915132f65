package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/talentlens/talentlens/internal/port"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100

	// defaultPageCeiling is the safety valve against runaway pagination.
	defaultPageCeiling = 10
)

// Client is a paginated REST client for the GitHub API. It walks pages to
// exhaustion or a hard ceiling and classifies HTTP failures into the typed
// errors in internal/port. Response bodies are JSON-decoded into wire types
// and projected to domain entities before leaving this package.
type Client struct {
	baseURL     string
	token       string
	pageCeiling int
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithPageCeiling overrides the pagination safety ceiling.
func WithPageCeiling(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageCeiling = n
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a GitHub API client. An empty token is permitted;
// unauthenticated calls run under a far lower upstream rate ceiling.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		token:       token,
		pageCeiling: defaultPageCeiling,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs one GET against path (already including query parameters)
// and decodes the 2xx body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("github: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github: %s: %w: %w", path, port.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return classifyStatus(resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github: decode %s: %w: %w", path, port.ErrTransient, err)
	}
	return nil
}

// classifyStatus maps an HTTP status code onto the typed error taxonomy.
func classifyStatus(status int, path string) error {
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("github: %s (%d): %w", path, status, port.ErrUnauthorized)
	case http.StatusForbidden, http.StatusTooManyRequests:
		return fmt.Errorf("github: %s (%d): %w", path, status, port.ErrRateLimited)
	case http.StatusNotFound:
		return fmt.Errorf("github: %s (%d): %w", path, status, port.ErrNotFound)
	default:
		return fmt.Errorf("github: %s (%d): %w", path, status, port.ErrTransient)
	}
}

// fetchAllPages walks a list endpoint page by page, accumulating items
// until a page comes back shorter than perPage (end of data) or the page
// ceiling is hit.
func fetchAllPages[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("per_page", fmt.Sprint(perPage))

	var all []T
	for page := 1; page <= c.pageCeiling; page++ {
		query.Set("page", fmt.Sprint(page))

		var batch []T
		if err := c.get(ctx, path+"?"+query.Encode(), &batch); err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return all, nil
}
