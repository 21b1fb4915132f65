package domain

// ProfileMetrics summarizes a contributor's overall merged-PR activity,
// used for the proficiency grade.
type ProfileMetrics struct {
	TotalMergedPRs int     `json:"total_merged_prs"`
	AvgPRsPerWeek  float64 `json:"avg_prs_per_week"` // over the last year
	PublicRepos    int     `json:"public_repos"`
}

// ContributorAnalysis is the final per-contributor report: their best pull
// requests by composite score plus an aggregate proficiency grade. Created
// once per contributor per job run; a re-run produces a new value.
type ContributorAnalysis struct {
	Contributor      Contributor         `json:"contributor"`
	TopPullRequests  []RankedPullRequest `json:"top_pull_requests"` // descending by composite score, len <= 3
	TotalConsidered  int                 `json:"total_considered"`
	Profile          ProfileMetrics      `json:"profile"`
	ProficiencyGrade float64             `json:"proficiency_grade"` // 0-100
	Note             string              `json:"note,omitempty"`    // set when a target failed or nothing qualified
}
