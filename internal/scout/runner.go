package scout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/port"
	"github.com/talentlens/talentlens/internal/service"
)

// CompletionHook receives a finished job's result for hand-off (e.g.
// persistence). The runner itself never persists anything.
type CompletionHook func(jobID string, result []domain.ContributorAnalysis)

// Runner executes scouting jobs as cancellable background units of work,
// one goroutine per job. All progress flows through the Tracker.
type Runner struct {
	discovery  *service.DiscoveryService
	analyzer   *service.AnalyzerService
	profile    *service.ProfileService
	tracker    *Tracker
	onComplete CompletionHook
}

// NewRunner creates a runner. onComplete may be nil.
func NewRunner(discovery *service.DiscoveryService, analyzer *service.AnalyzerService, profile *service.ProfileService, tracker *Tracker, onComplete CompletionHook) *Runner {
	return &Runner{
		discovery:  discovery,
		analyzer:   analyzer,
		profile:    profile,
		tracker:    tracker,
		onComplete: onComplete,
	}
}

// StartRepositories launches a background job over repository URLs and
// returns its ID immediately.
func (r *Runner) StartRepositories(urls []string) string {
	jobID := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())
	r.tracker.Create(jobID, cancel)

	go r.runRepositories(ctx, jobID, urls)
	return jobID
}

// StartContributors launches a background job over contributor logins,
// searching each one's whole profile, and returns its ID immediately.
func (r *Runner) StartContributors(logins []string) string {
	jobID := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())
	r.tracker.Create(jobID, cancel)

	go r.runContributors(ctx, jobID, logins)
	return jobID
}

func (r *Runner) runRepositories(ctx context.Context, jobID string, urls []string) {
	slog.Info("scout job started", "job_id", jobID, "mode", "repositories", "targets", len(urls))

	var result []domain.ContributorAnalysis
	parsed := 0
	share := 100.0 / float64(len(urls))

	for i, rawURL := range urls {
		base := float64(i) * share

		ref, err := domain.ParseRepositoryRef(rawURL)
		if err != nil {
			slog.Warn("skipping unparseable target", "job_id", jobID, "target", rawURL, "error", err)
			result = append(result, failedTargetEntry(rawURL, "invalid repository reference"))
			continue
		}
		parsed++

		r.tracker.Progress(jobID, base, ref.String(),
			fmt.Sprintf("discovering contributors of %s", ref))

		contributors, err := r.discovery.TopContributors(ctx, ref)
		if err != nil {
			if fatal := r.failIfFatal(ctx, jobID, err); fatal {
				return
			}
			slog.Warn("target discovery failed", "job_id", jobID, "repo", ref.String(), "error", err)
			result = append(result, failedTargetEntry(ref.String(), targetNote(err)))
			continue
		}

		analyses, err := r.analyzeContributors(ctx, jobID, contributors, &ref, base, share)
		if err != nil {
			if fatal := r.failIfFatal(ctx, jobID, err); fatal {
				return
			}
			result = append(result, failedTargetEntry(ref.String(), targetNote(err)))
			continue
		}
		result = append(result, analyses...)
	}

	if parsed == 0 {
		r.tracker.Fail(jobID, "no target could be parsed")
		slog.Error("scout job failed, all targets invalid", "job_id", jobID)
		return
	}

	r.finish(jobID, result)
}

func (r *Runner) runContributors(ctx context.Context, jobID string, logins []string) {
	slog.Info("scout job started", "job_id", jobID, "mode", "contributors", "targets", len(logins))

	contributors := make([]domain.Contributor, 0, len(logins))
	for _, login := range logins {
		contributors = append(contributors, domain.Contributor{Login: login})
	}

	// Profile-wide search: no repository constraint.
	result, err := r.analyzeContributors(ctx, jobID, contributors, nil, 0, 100)
	if err != nil {
		if fatal := r.failIfFatal(ctx, jobID, err); fatal {
			return
		}
		r.tracker.Fail(jobID, "contributor analysis failed")
		return
	}

	r.finish(jobID, result)
}

// analyzeContributors processes contributors sequentially (the bounded
// fan-out lives inside the analyzer), advancing progress proportionally
// within [base, base+share]. Per-contributor failures are contained as
// annotated empty analyses; fatal classifications abort with an error.
func (r *Runner) analyzeContributors(ctx context.Context, jobID string, contributors []domain.Contributor, ref *domain.RepositoryRef, base, share float64) ([]domain.ContributorAnalysis, error) {
	analyses := make([]domain.ContributorAnalysis, 0, len(contributors))

	for i, contributor := range contributors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r.tracker.Progress(jobID,
			base+share*float64(i)/float64(len(contributors)),
			contributor.Login,
			fmt.Sprintf("analyzing %s (%d/%d)", contributor.Login, i+1, len(contributors)))

		prs, err := r.discovery.MergedPullRequests(ctx, contributor.Login, ref)
		if err != nil {
			if isFatal(err) || ctx.Err() != nil {
				return nil, err
			}
			slog.Warn("pull request discovery failed", "job_id", jobID,
				"login", contributor.Login, "error", err)
			analyses = append(analyses, domain.ContributorAnalysis{
				Contributor: contributor,
				Note:        targetNote(err),
			})
			continue
		}

		analysis, err := r.analyzer.RankContributor(ctx, contributor, prs)
		if err != nil {
			return nil, err
		}

		analysis.Profile = r.profile.Metrics(ctx, contributor.Login)
		analysis.ProficiencyGrade = service.Grade(analysis.Profile, analysis.TopPullRequests)

		analyses = append(analyses, analysis)
	}
	return analyses, nil
}

func (r *Runner) finish(jobID string, result []domain.ContributorAnalysis) {
	r.tracker.Complete(jobID, result,
		fmt.Sprintf("analyzed %d contributors", len(result)))
	slog.Info("scout job complete", "job_id", jobID, "contributors", len(result))

	if r.onComplete != nil {
		r.onComplete(jobID, result)
	}
}

// failIfFatal moves the job to failed when the error is fatal to the whole
// run (cancellation, credentials, rate limit) and reports whether it did.
func (r *Runner) failIfFatal(ctx context.Context, jobID string, err error) bool {
	if ctx.Err() != nil {
		r.tracker.Fail(jobID, port.ErrJobCancelled.Error())
		slog.Info("scout job cancelled", "job_id", jobID)
		return true
	}
	if !isFatal(err) {
		return false
	}
	switch {
	case errors.Is(err, port.ErrUnauthorized):
		r.tracker.Fail(jobID, "upstream credential rejected")
	case errors.Is(err, port.ErrRateLimited):
		r.tracker.Fail(jobID, "upstream rate limit exhausted")
	}
	slog.Error("scout job failed", "job_id", jobID, "error", err)
	return true
}

func isFatal(err error) bool {
	return errors.Is(err, port.ErrUnauthorized) || errors.Is(err, port.ErrRateLimited)
}

// failedTargetEntry records a target that could not be analyzed. Partial
// success is success at the job level; these entries keep the failure
// visible in the result instead of failing the job.
func failedTargetEntry(target, note string) domain.ContributorAnalysis {
	return domain.ContributorAnalysis{
		Contributor: domain.Contributor{Login: target},
		Note:        note,
	}
}

// targetNote turns a contained error into a short human-readable note,
// never a raw upstream body.
func targetNote(err error) string {
	switch {
	case errors.Is(err, port.ErrRepositoryNotFound), errors.Is(err, port.ErrNotFound):
		return "repository not found"
	default:
		return "analysis failed, skipped"
	}
}
