// Package comment provides use cases for article comments: moderated
// creation, owner-or-admin edits and deletes, and the like counter.
package comment

import "errors"

// Sentinel errors for comment use case operations.
var (
	// ErrCommentNotFound indicates the comment is absent, soft-deleted,
	// or not visible to the acting user.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrInvalidCommentID indicates that the provided comment ID is empty.
	ErrInvalidCommentID = errors.New("invalid comment ID")

	// ErrInappropriateContent indicates the content failed the word filter.
	ErrInappropriateContent = errors.New("comment contains inappropriate content")
)
