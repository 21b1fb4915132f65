package service

import "strings"

// PriorityLabels is the fixed vocabulary of label terms that boost a pull
// request's score. Matching is a case-insensitive substring test.
var PriorityLabels = []string{"feature", "high priority", "bounty", "$", "money", "reward", "points"}

// Normalization constants for the volume terms. Each term is capped at 20
// points so no single dimension dominates; the denominators represent
// "large but not extreme" pull requests.
const (
	labelPoints   = 10.0
	filesPerMax   = 50.0
	linesPerMax   = 5000.0
	commitsPerMax = 20.0
	volumeTermCap = 20.0
)

// MaxCompositeScore is the theoretical ceiling: every priority term at 10
// points plus three volume terms capped at 20 each.
var MaxCompositeScore = float64(len(PriorityLabels))*labelPoints + 3*volumeTermCap

// LabelScore awards 10 points for each distinct priority term matched by at
// least one label. A term is counted once no matter how many labels match
// it, so the score is bounded at 70.
func LabelScore(labels []string) float64 {
	lowered := make([]string, 0, len(labels))
	for _, l := range labels {
		lowered = append(lowered, strings.ToLower(l))
	}

	score := 0.0
	for _, term := range PriorityLabels {
		for _, l := range lowered {
			if strings.Contains(l, term) {
				score += labelPoints
				break
			}
		}
	}
	return score
}

// CompositeScore combines the label signal with three capped volume terms.
// Pure function: identical inputs always produce an identical score.
func CompositeScore(labelScore float64, filesChanged, linesChanged, commitCount int) float64 {
	return labelScore +
		cappedTerm(float64(filesChanged), filesPerMax) +
		cappedTerm(float64(linesChanged), linesPerMax) +
		cappedTerm(float64(commitCount), commitsPerMax)
}

func cappedTerm(value, denominator float64) float64 {
	term := value / denominator * volumeTermCap
	if term > volumeTermCap {
		return volumeTermCap
	}
	if term < 0 {
		return 0
	}
	return term
}
