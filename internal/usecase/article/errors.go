// Package article provides use cases for managing articles: filtered and
// paginated reads, transactional writes with tag replacement, cascading
// soft-delete, and the best-effort view counter.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article does not
	// exist or has been soft-deleted.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is empty.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrNothingToUpdate indicates that an update supplied no fields, no
	// cover image and no tag list. A no-op write is rejected rather than
	// silently succeeding.
	ErrNothingToUpdate = errors.New("no fields to update")
)
