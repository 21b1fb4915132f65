package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/talentlens/talentlens/internal/domain"
	"github.com/talentlens/talentlens/internal/port"
)

// ProfileService collects a contributor's profile-wide merged-PR activity
// and turns it, together with their ranked work, into a proficiency grade.
type ProfileService struct {
	forge port.ForgeProvider
	now   func() time.Time
}

// NewProfileService creates a profile service.
func NewProfileService(forge port.ForgeProvider) *ProfileService {
	return &ProfileService{forge: forge, now: time.Now}
}

// Metrics fetches profile-wide activity for a login. Any fetch failure
// degrades to zero metrics with a log line; grading still proceeds.
func (s *ProfileService) Metrics(ctx context.Context, login string) domain.ProfileMetrics {
	var m domain.ProfileMetrics

	prs, err := s.forge.ListAuthoredMergedPullRequests(ctx, login)
	if err != nil {
		slog.Warn("profile pull request fetch failed", "login", login, "error", err)
	} else {
		m.TotalMergedPRs = len(prs)
		m.AvgPRsPerWeek = mergeRatePerWeek(prs, s.now())
	}

	user, err := s.forge.GetUser(ctx, login)
	if err != nil {
		slog.Warn("profile fetch failed", "login", login, "error", err)
	} else {
		m.PublicRepos = user.PublicRepos
	}
	return m
}

// mergeRatePerWeek averages merged PRs per week over the last year. The
// window is the span since the first merge inside the year, capped at 52
// weeks and floored at 1 so recent contributors are measured fairly.
func mergeRatePerWeek(prs []domain.PullRequest, now time.Time) float64 {
	yearAgo := now.AddDate(-1, 0, 0)

	var inYear int
	var earliest time.Time
	for _, pr := range prs {
		if pr.MergedAt == nil || pr.MergedAt.Before(yearAgo) {
			continue
		}
		inYear++
		if earliest.IsZero() || pr.MergedAt.Before(earliest) {
			earliest = *pr.MergedAt
		}
	}
	if inYear == 0 {
		return 0
	}

	weeks := now.Sub(earliest).Hours() / 24 / 7
	weeks = math.Min(52, math.Max(1, weeks))
	return math.Round(float64(inYear)/weeks*100) / 100
}

// Grade computes the aggregate proficiency grade (0-100) as the mean of
// three subscores: merged-PR activity, repository breadth, and the
// strength of the contributor's best ranked work.
func Grade(m domain.ProfileMetrics, top []domain.RankedPullRequest) float64 {
	grade := (activityScore(m.TotalMergedPRs, m.AvgPRsPerWeek) +
		repoBreadthScore(m.PublicRepos) +
		bestWorkScore(top)) / 3
	return math.Round(grade*100) / 100
}

// activityScore tiers total merged PRs (60%) and weekly merge rate (40%).
func activityScore(totalMerged int, perWeek float64) float64 {
	var countScore float64
	switch {
	case totalMerged >= 50:
		countScore = 100
	case totalMerged >= 30:
		countScore = 80
	case totalMerged >= 20:
		countScore = 70
	case totalMerged >= 10:
		countScore = 60
	case totalMerged >= 5:
		countScore = 50
	case totalMerged >= 2:
		countScore = 40
	case totalMerged >= 1:
		countScore = 30
	}

	var freqScore float64
	switch {
	case perWeek >= 2.0:
		freqScore = 100
	case perWeek >= 1.0:
		freqScore = 80
	case perWeek >= 0.5:
		freqScore = 60
	case perWeek >= 0.25:
		freqScore = 40
	case perWeek > 0:
		freqScore = 20
	}

	return countScore*0.6 + freqScore*0.4
}

func repoBreadthScore(repos int) float64 {
	switch {
	case repos >= 20:
		return 100
	case repos >= 15:
		return 90
	case repos >= 10:
		return 80
	case repos >= 7:
		return 70
	case repos >= 5:
		return 60
	case repos >= 3:
		return 50
	case repos >= 2:
		return 40
	case repos >= 1:
		return 30
	default:
		return 0
	}
}

// bestWorkScore maps the mean composite score of the top pull requests
// onto 0-100.
func bestWorkScore(top []domain.RankedPullRequest) float64 {
	if len(top) == 0 {
		return 0
	}
	var sum float64
	for _, pr := range top {
		sum += pr.CompositeScore
	}
	mean := sum / float64(len(top))
	return math.Min(100, mean/MaxCompositeScore*100)
}
