package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// CommentWithAuthor is a comment joined with its author's display fields.
type CommentWithAuthor struct {
	Comment          *entity.Comment
	AuthorName       string
	AuthorPictureURL string
}

// CommentRepository is the persistence boundary for article comments.
// Soft-deleted comments are invisible to every read path here; the cascading
// delete that accompanies an article delete lives in ArticleRepository.
type CommentRepository interface {
	// ListByArticle returns the live comments of an article, newest first.
	ListByArticle(ctx context.Context, articleID string) ([]CommentWithAuthor, error)
	// Get returns a live comment by id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*entity.Comment, error)
	// Create inserts a comment and returns it joined with author fields.
	Create(ctx context.Context, c *entity.Comment) (*CommentWithAuthor, error)
	// UpdateContent replaces the content of a live comment.
	// Returns (nil, nil) when the comment is absent or deleted.
	UpdateContent(ctx context.Context, id, content string) (*CommentWithAuthor, error)
	// SoftDelete marks a live comment deleted. Returns false when absent.
	SoftDelete(ctx context.Context, id string) (bool, error)
	// IncrementLikes adds 1 to the like counter of a live comment and
	// returns the updated row, or (nil, nil) when absent.
	IncrementLikes(ctx context.Context, id string) (*CommentWithAuthor, error)
}
