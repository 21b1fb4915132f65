package domain

import "time"

// PullRequestRef points at a pull request discovered via search. Search
// results can be stale, so the authoritative record must be re-fetched
// before the pull request enters scoring.
type PullRequestRef struct {
	Repo   RepositoryRef `json:"repo"`
	Number int           `json:"number"`
}

// PullRequest is the authoritative record of a pull request. Only pull
// requests with a non-nil MergedAt are eligible for analysis.
type PullRequest struct {
	ID        int64         `json:"id"`
	Number    int           `json:"number"`
	Title     string        `json:"title"`
	URL       string        `json:"url"`
	Repo      RepositoryRef `json:"repo"`
	Author    string        `json:"author"`
	Labels    []string      `json:"labels"`
	CreatedAt time.Time     `json:"created_at"`
	ClosedAt  *time.Time    `json:"closed_at,omitempty"`
	MergedAt  *time.Time    `json:"merged_at,omitempty"`
}

// Merged reports whether the pull request was actually merged.
func (pr PullRequest) Merged() bool {
	return pr.MergedAt != nil
}

// FileDiff is one changed file in a pull request diff.
type FileDiff struct {
	Filename  string `json:"filename"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// PullRequestMetrics are derived per pull request and never mutated after
// computation.
type PullRequestMetrics struct {
	FilesChanged int     `json:"files_changed"`
	LinesChanged int     `json:"lines_changed"` // additions + deletions
	CommitCount  int     `json:"commit_count"`
	LabelScore   float64 `json:"label_score"`
}

// RankedPullRequest is a pull request together with its metrics and
// composite score. Immutable once produced.
type RankedPullRequest struct {
	PullRequest
	PullRequestMetrics
	CompositeScore float64 `json:"composite_score"`
}
