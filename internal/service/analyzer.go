package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/port"
)

// AnalyzerService scores merged pull requests and reduces each
// contributor's work to their best K.
type AnalyzerService struct {
	forge   port.ForgeProvider
	workers int // concurrent pull request analyses per contributor
	topK    int // best pull requests kept per contributor
}

// NewAnalyzerService creates an analyzer. workers bounds concurrent pull
// request analyses within one contributor (keep small, the upstream rate
// allowance is shared); topK bounds the pull requests kept per contributor.
func NewAnalyzerService(forge port.ForgeProvider, workers, topK int) *AnalyzerService {
	if workers < 1 {
		workers = 1
	}
	return &AnalyzerService{forge: forge, workers: workers, topK: topK}
}

// AnalyzePullRequest fetches the file diff list and commit list of one
// merged pull request concurrently and computes its metrics and composite
// score. A failed sub-fetch degrades the corresponding metric to zero
// rather than failing the pull request.
func (s *AnalyzerService) AnalyzePullRequest(ctx context.Context, pr domain.PullRequest) domain.RankedPullRequest {
	var (
		files   []domain.FileDiff
		commits int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		files, err = s.forge.ListPullRequestFiles(gctx, pr.Repo, pr.Number)
		if err != nil {
			slog.Warn("file list fetch failed, scoring with zero file metrics",
				"repo", pr.Repo.String(), "number", pr.Number, "error", err)
			files = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		commits, err = s.forge.CountPullRequestCommits(gctx, pr.Repo, pr.Number)
		if err != nil {
			slog.Warn("commit list fetch failed, scoring with zero commits",
				"repo", pr.Repo.String(), "number", pr.Number, "error", err)
			commits = 0
		}
		return nil
	})
	_ = g.Wait() // sub-fetch errors are absorbed above

	lines := 0
	for _, f := range files {
		lines += f.Additions + f.Deletions
	}

	metrics := domain.PullRequestMetrics{
		FilesChanged: len(files),
		LinesChanged: lines,
		CommitCount:  commits,
		LabelScore:   LabelScore(pr.Labels),
	}

	return domain.RankedPullRequest{
		PullRequest:        pr,
		PullRequestMetrics: metrics,
		CompositeScore: CompositeScore(
			metrics.LabelScore, metrics.FilesChanged, metrics.LinesChanged, metrics.CommitCount,
		),
	}
}

// RankContributor analyzes every pull request with a bounded worker pool
// and reduces the results to the contributor's best topK. Output order is
// imposed here (descending by composite score, ties broken by discovery
// order) regardless of which concurrent fetch finished first.
func (s *AnalyzerService) RankContributor(ctx context.Context, contributor domain.Contributor, prs []domain.PullRequest) (domain.ContributorAnalysis, error) {
	ranked := make([]domain.RankedPullRequest, len(prs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)
	for i, pr := range prs {
		if err := ctx.Err(); err != nil {
			return domain.ContributorAnalysis{}, err
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, pr domain.PullRequest) {
			defer wg.Done()
			defer func() { <-sem }()
			ranked[i] = s.AnalyzePullRequest(ctx, pr)
		}(i, pr)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.ContributorAnalysis{}, err
	}

	// Stable: ties keep discovery order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})
	top := ranked
	if len(top) > s.topK {
		top = top[:s.topK]
	}

	analysis := domain.ContributorAnalysis{
		Contributor:     contributor,
		TopPullRequests: top,
		TotalConsidered: len(prs),
	}
	if len(prs) == 0 {
		analysis.Note = "no merged pull requests qualified for analysis"
	}
	return analysis, nil
}
