package port

import (
	"context"

	"github.com/talentlens/talentlens/internal/domain"
)

// ForgeProvider abstracts the code-hosting API the pipeline reads from.
// Implementations handle pagination and classify failures into the sentinel
// errors above; callers never see HTTP status codes or wire shapes.
type ForgeProvider interface {
	// ListContributors returns every contributor of a repository, fully
	// paginated, in the upstream's order.
	ListContributors(ctx context.Context, ref domain.RepositoryRef) ([]domain.Contributor, error)

	// SearchMergedPullRequests finds merged pull requests authored by login,
	// up to limit. A nil ref searches the author's whole profile; a non-nil
	// ref constrains the search to that repository.
	SearchMergedPullRequests(ctx context.Context, login string, ref *domain.RepositoryRef, limit int) ([]domain.PullRequestRef, error)

	// GetPullRequest fetches the authoritative pull request record.
	GetPullRequest(ctx context.Context, ref domain.RepositoryRef, number int) (*domain.PullRequest, error)

	// ListPullRequestFiles returns the full file diff list of a pull request.
	ListPullRequestFiles(ctx context.Context, ref domain.RepositoryRef, number int) ([]domain.FileDiff, error)

	// CountPullRequestCommits returns the number of commits in a pull request.
	CountPullRequestCommits(ctx context.Context, ref domain.RepositoryRef, number int) (int, error)

	// GetUser fetches a user's public profile.
	GetUser(ctx context.Context, login string) (*domain.UserProfile, error)

	// ListAuthoredMergedPullRequests returns lightweight records of every
	// merged pull request authored by login (search-backed, so bounded by
	// the search pagination ceiling). Used for profile metrics only.
	ListAuthoredMergedPullRequests(ctx context.Context, login string) ([]domain.PullRequest, error)
}

// ResultStore receives finished analyses for persistence. The runner hands
// results off on completion and persists nothing itself.
type ResultStore interface {
	SaveContributorAnalysis(ctx context.Context, jobID string, a *domain.ContributorAnalysis) error
}
