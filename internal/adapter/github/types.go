package github

import (
	"time"

	"github.com/talentlens/talentlens/internal/domain"
)

// Wire types mirror the upstream JSON shapes. They never leave this
// package; projection into domain entities happens at the boundary.

type contributorWire struct {
	Login         string `json:"login"`
	ID            int64  `json:"id"`
	HTMLURL       string `json:"html_url"`
	Type          string `json:"type"`
	Contributions int    `json:"contributions"`
}

func (w contributorWire) toDomain() domain.Contributor {
	return domain.Contributor{
		Login:         w.Login,
		ID:            w.ID,
		ProfileURL:    w.HTMLURL,
		Type:          w.Type,
		Contributions: w.Contributions,
	}
}

type labelWire struct {
	Name string `json:"name"`
}

type pullRequestWire struct {
	ID      int64  `json:"id"`
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	User    struct {
		Login string `json:"login"`
	} `json:"user"`
	Labels    []labelWire `json:"labels"`
	CreatedAt time.Time   `json:"created_at"`
	ClosedAt  *time.Time  `json:"closed_at"`
	MergedAt  *time.Time  `json:"merged_at"`
}

func (w pullRequestWire) toDomain(ref domain.RepositoryRef) domain.PullRequest {
	labels := make([]string, 0, len(w.Labels))
	for _, l := range w.Labels {
		labels = append(labels, l.Name)
	}
	return domain.PullRequest{
		ID:        w.ID,
		Number:    w.Number,
		Title:     w.Title,
		URL:       w.HTMLURL,
		Repo:      ref,
		Author:    w.User.Login,
		Labels:    labels,
		CreatedAt: w.CreatedAt,
		ClosedAt:  w.ClosedAt,
		MergedAt:  w.MergedAt,
	}
}

type fileWire struct {
	Filename  string `json:"filename"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

type commitWire struct {
	SHA string `json:"sha"`
}

// searchItemWire is one hit from the issue search endpoint. repository_url
// looks like https://api.github.com/repos/{owner}/{name}.
type searchItemWire struct {
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	HTMLURL       string    `json:"html_url"`
	RepositoryURL string    `json:"repository_url"`
	CreatedAt     time.Time `json:"created_at"`
	PullRequest   struct {
		MergedAt *time.Time `json:"merged_at"`
	} `json:"pull_request"`
}

type searchResultWire struct {
	TotalCount int              `json:"total_count"`
	Items      []searchItemWire `json:"items"`
}

type userWire struct {
	Login       string `json:"login"`
	Type        string `json:"type"`
	PublicRepos int    `json:"public_repos"`
}
