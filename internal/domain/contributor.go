package domain

import "strings"

// Contributor is an author identity with accepted changes in a repository.
// Identity is Login; uniqueness is enforced upstream, not re-validated here.
type Contributor struct {
	Login         string `json:"login"`
	ID            int64  `json:"id"`
	ProfileURL    string `json:"profile_url"`
	Type          string `json:"type,omitempty"` // upstream account type, e.g. "User" or "Bot"
	Contributions int    `json:"contributions"`
}

// UserProfile holds the subset of a user's public profile the pipeline reads.
type UserProfile struct {
	Login       string `json:"login"`
	Type        string `json:"type"` // "User", "Organization", "Bot"
	PublicRepos int    `json:"public_repos"`
}

// knownBots are automation accounts that show up in contributor listings
// of popular repositories.
var knownBots = map[string]bool{
	"dependabot":       true,
	"renovate":         true,
	"greenkeeper":      true,
	"snyk-bot":         true,
	"codecov":          true,
	"allcontributors":  true,
	"stale":            true,
	"mergify":          true,
	"imgbot":           true,
	"github-actions":   true,
	"actions-user":     true,
	"prettier-ci":      true,
	"semantic-release": true,
}

// IsBot reports whether a login looks like an automation account.
// accountType is the upstream API's user type field ("Bot" wins outright);
// otherwise common naming patterns and well-known bot names are checked.
func IsBot(login, accountType string) bool {
	if strings.EqualFold(accountType, "bot") {
		return true
	}

	l := strings.ToLower(login)
	switch {
	case strings.HasSuffix(l, "[bot]"),
		strings.HasSuffix(l, "-bot"),
		strings.HasSuffix(l, "_bot"),
		strings.HasPrefix(l, "bot-"),
		strings.HasPrefix(l, "bot_"):
		return true
	}
	return knownBots[l]
}
