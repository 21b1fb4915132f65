package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidReference marks input that cannot be parsed into a repository
// reference. Fatal for that target only, never for the whole job.
var ErrInvalidReference = errors.New("invalid repository reference")

// RepositoryRef identifies a repository on the hosting platform by owner and name.
// It is derived once from a URL and never mutated.
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// String returns the canonical "owner/name" form.
func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepositoryRef extracts owner and name from a repository URL.
// The first two non-empty path segments are owner and name; a trailing
// ".git" suffix on the name is stripped. Malformed input fails with
// ErrInvalidReference; a partially populated ref is never returned.
func ParseRepositoryRef(rawURL string) (RepositoryRef, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return RepositoryRef{}, fmt.Errorf("parse %q: %w", rawURL, ErrInvalidReference)
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return RepositoryRef{}, fmt.Errorf("parse %q: need owner and name: %w", rawURL, ErrInvalidReference)
	}

	owner := segments[0]
	name := strings.TrimSuffix(segments[1], ".git")
	if owner == "" || name == "" {
		return RepositoryRef{}, fmt.Errorf("parse %q: empty owner or name: %w", rawURL, ErrInvalidReference)
	}

	return RepositoryRef{Owner: owner, Name: name}, nil
}
