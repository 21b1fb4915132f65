package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/port"
)

// DiscoveryService finds the contributors worth analyzing and their merged
// pull requests.
type DiscoveryService struct {
	forge    port.ForgeProvider
	topN     int // contributors kept per repository
	maxPulls int // merged pull requests considered per contributor
}

// NewDiscoveryService creates a discovery service. topN bounds the
// contributors kept per repository; maxPulls bounds the pull requests
// considered per contributor.
func NewDiscoveryService(forge port.ForgeProvider, topN, maxPulls int) *DiscoveryService {
	return &DiscoveryService{forge: forge, topN: topN, maxPulls: maxPulls}
}

// TopContributors returns the repository's contributors ranked descending
// by contribution count and truncated to topN. Bot accounts are dropped
// before truncation. A repository with zero contributors yields an empty
// list, not an error.
func (s *DiscoveryService) TopContributors(ctx context.Context, ref domain.RepositoryRef) ([]domain.Contributor, error) {
	all, err := s.forge.ListContributors(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list contributors for %s: %w", ref, err)
	}

	humans := make([]domain.Contributor, 0, len(all))
	for _, c := range all {
		if domain.IsBot(c.Login, c.Type) {
			slog.Debug("skipping bot contributor", "login", c.Login, "repo", ref.String())
			continue
		}
		humans = append(humans, c)
	}

	sort.SliceStable(humans, func(i, j int) bool {
		return humans[i].Contributions > humans[j].Contributions
	})
	if len(humans) > s.topN {
		humans = humans[:s.topN]
	}
	return humans, nil
}

// MergedPullRequests finds merged pull requests authored by login, capped
// at maxPulls. Each search hit is re-fetched for its authoritative record
// and kept only if the merge timestamp is non-nil: search results can list
// a pull request whose metadata went stale. A single failed fetch is
// logged and skipped; it never aborts discovery for the contributor.
func (s *DiscoveryService) MergedPullRequests(ctx context.Context, login string, ref *domain.RepositoryRef) ([]domain.PullRequest, error) {
	refs, err := s.forge.SearchMergedPullRequests(ctx, login, ref, s.maxPulls)
	if err != nil {
		return nil, fmt.Errorf("search pull requests for %s: %w", login, err)
	}

	prs := make([]domain.PullRequest, 0, len(refs))
	for _, prRef := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pr, err := s.forge.GetPullRequest(ctx, prRef.Repo, prRef.Number)
		if err != nil {
			// Credential and rate failures are fatal to the whole job;
			// anything else (a 404ed pull request, a blip) is skipped.
			if errors.Is(err, port.ErrUnauthorized) || errors.Is(err, port.ErrRateLimited) {
				return nil, err
			}
			slog.Warn("skipping pull request, fetch failed",
				"repo", prRef.Repo.String(), "number", prRef.Number, "error", err)
			continue
		}
		if !pr.Merged() {
			continue
		}
		prs = append(prs, *pr)
	}
	return prs, nil
}
