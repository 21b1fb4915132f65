package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/talentlens/talentlens/internal/domain"
)

// SearchMergedPullRequests finds merged pull requests authored by login via
// the issue search endpoint, up to limit hits. A nil ref searches the
// author's whole profile.
func (c *Client) SearchMergedPullRequests(ctx context.Context, login string, ref *domain.RepositoryRef, limit int) ([]domain.PullRequestRef, error) {
	q := fmt.Sprintf("author:%s type:pr is:merged", login)
	if ref != nil {
		q = fmt.Sprintf("repo:%s %s", ref, q)
	}

	items, err := c.searchIssues(ctx, q, limit)
	if err != nil {
		return nil, err
	}

	refs := make([]domain.PullRequestRef, 0, len(items))
	for _, item := range items {
		repo, ok := parseRepositoryURL(item.RepositoryURL)
		if !ok {
			continue
		}
		refs = append(refs, domain.PullRequestRef{Repo: repo, Number: item.Number})
	}
	return refs, nil
}

// ListAuthoredMergedPullRequests returns lightweight merged-PR records for
// a login's whole profile, taking merge timestamps from the search payload.
// Bounded by the search pagination ceiling; used for profile metrics only.
func (c *Client) ListAuthoredMergedPullRequests(ctx context.Context, login string) ([]domain.PullRequest, error) {
	q := fmt.Sprintf("author:%s type:pr is:merged", login)

	items, err := c.searchIssues(ctx, q, c.pageCeiling*perPage)
	if err != nil {
		return nil, err
	}

	prs := make([]domain.PullRequest, 0, len(items))
	for _, item := range items {
		repo, _ := parseRepositoryURL(item.RepositoryURL)
		prs = append(prs, domain.PullRequest{
			Number:    item.Number,
			Title:     item.Title,
			URL:       item.HTMLURL,
			Repo:      repo,
			Author:    login,
			CreatedAt: item.CreatedAt,
			MergedAt:  item.PullRequest.MergedAt,
		})
	}
	return prs, nil
}

// GetPullRequest fetches the authoritative pull request record. This is the
// source of truth for the merge timestamp; search hits can be stale.
func (c *Client) GetPullRequest(ctx context.Context, ref domain.RepositoryRef, number int) (*domain.PullRequest, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", ref.Owner, ref.Name, number)

	var w pullRequestWire
	if err := c.get(ctx, path, &w); err != nil {
		return nil, err
	}
	pr := w.toDomain(ref)
	return &pr, nil
}

// ListPullRequestFiles returns the full file diff list of a pull request.
func (c *Client) ListPullRequestFiles(ctx context.Context, ref domain.RepositoryRef, number int) ([]domain.FileDiff, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/files", ref.Owner, ref.Name, number)

	wires, err := fetchAllPages[fileWire](ctx, c, path, nil)
	if err != nil {
		return nil, err
	}

	files := make([]domain.FileDiff, 0, len(wires))
	for _, w := range wires {
		files = append(files, domain.FileDiff{
			Filename:  w.Filename,
			Additions: w.Additions,
			Deletions: w.Deletions,
		})
	}
	return files, nil
}

// CountPullRequestCommits returns the number of commits in a pull request.
func (c *Client) CountPullRequestCommits(ctx context.Context, ref domain.RepositoryRef, number int) (int, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/commits", ref.Owner, ref.Name, number)

	wires, err := fetchAllPages[commitWire](ctx, c, path, nil)
	if err != nil {
		return 0, err
	}
	return len(wires), nil
}

// searchIssues pages through the issue search endpoint up to limit items.
// Unlike plain list endpoints the response is an object wrapping the items.
func (c *Client) searchIssues(ctx context.Context, q string, limit int) ([]searchItemWire, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("per_page", fmt.Sprint(perPage))

	var items []searchItemWire
	for page := 1; page <= c.pageCeiling; page++ {
		query.Set("page", fmt.Sprint(page))

		var result searchResultWire
		if err := c.get(ctx, "/search/issues?"+query.Encode(), &result); err != nil {
			return nil, err
		}
		items = append(items, result.Items...)

		if len(items) >= limit || len(result.Items) < perPage {
			break
		}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// parseRepositoryURL extracts owner/name from an API repository URL like
// https://api.github.com/repos/{owner}/{name}.
func parseRepositoryURL(repoURL string) (domain.RepositoryRef, bool) {
	_, after, ok := strings.Cut(repoURL, "/repos/")
	if !ok {
		return domain.RepositoryRef{}, false
	}
	parts := strings.Split(after, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return domain.RepositoryRef{}, false
	}
	return domain.RepositoryRef{Owner: parts[0], Name: parts[1]}, true
}
