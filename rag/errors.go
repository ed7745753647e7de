package rag

import (
	"github.com/pkg/errors"
)

// Error kinds for the pipeline. Low-level components fail fast with one of
// these; callers match with errors.Is and decide whether to retry or surface.
var (
	// ErrInvalidConfig reports bad chunking or query parameters. Fatal, the
	// caller must fix its configuration.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrDimensionMismatch reports a vector whose dimension differs from the
	// index's established dimension. Fatal, the corpus must be reindexed.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyIndex reports a query against an index holding no chunks under
	// the given source filter. Recoverable, surfaced as "nothing relevant
	// found".
	ErrEmptyIndex = errors.New("empty index")

	// ErrNoContext reports that no retrieved chunk fit the context budget and
	// answering without context is disabled. Recoverable.
	ErrNoContext = errors.New("no context available")

	// ErrServiceUnavailable reports a transient external-service failure.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRateLimited reports external-service throttling.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidInput reports a request the external service permanently
	// rejects, e.g. text too long. Not retried.
	ErrInvalidInput = errors.New("invalid input")
)

// IsRetryable reports whether err is a transient external-service failure
// worth retrying with backoff.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrRateLimited)
}
