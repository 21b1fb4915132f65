package port

import "errors"

// Sentinel errors classifying upstream API failures. Callers branch with
// errors.Is; raw status codes never leave the fetch client.
var (
	// ErrUnauthorized means the credential is missing or invalid.
	// Fatal for the whole job.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited means the upstream refused the request under its rate
	// policy (403/429). The caller decides whether to back off or abort.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound means the requested resource does not exist.
	// Fatal for that target only.
	ErrNotFound = errors.New("not found")

	// ErrRepositoryNotFound is ErrNotFound surfaced at the repository level.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrTransient covers every other non-2xx or network-level failure.
	// Eligible for a bounded retry by the caller.
	ErrTransient = errors.New("transient upstream failure")

	// ErrJobNotFound means no job exists for the given ID.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobCancelled is recorded when the owning caller abandons a job.
	ErrJobCancelled = errors.New("job cancelled")
)
