package comment

import (
	"context"
	"fmt"
	"strings"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"

	"github.com/microcosm-cc/bluemonday"
)

// Service provides comment management use cases. Content passes the word
// filter and an HTML sanitizer before any write; moderation rejections
// happen before the store is touched.
type Service struct {
	Repo      repository.CommentRepository
	sanitizer *bluemonday.Policy
}

// NewService creates a comment service with the user-generated-content
// sanitization policy.
func NewService(repo repository.CommentRepository) *Service {
	return &Service{
		Repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// ListByArticle returns the live comments of an article, newest first.
func (s *Service) ListByArticle(ctx context.Context, articleID string) ([]repository.CommentWithAuthor, error) {
	if articleID == "" {
		return nil, ErrInvalidCommentID
	}
	comments, err := s.Repo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Create validates, moderates and stores a new comment, returning the row
// joined with its author fields.
func (s *Service) Create(ctx context.Context, articleID, authorID, content string) (*repository.CommentWithAuthor, error) {
	cleaned, err := s.moderate(content)
	if err != nil {
		return nil, err
	}
	if articleID == "" {
		return nil, &entity.ValidationError{Field: "articleID", Message: "is required"}
	}

	created, err := s.Repo.Create(ctx, &entity.Comment{
		ArticleID: articleID,
		AuthorID:  authorID,
		Content:   cleaned,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// Update replaces a comment's content. Only the comment's author (or an
// admin) may edit it; anyone else sees the same not-found result as for a
// missing comment.
func (s *Service) Update(ctx context.Context, id, actorID string, isAdmin bool, content string) (*repository.CommentWithAuthor, error) {
	cleaned, err := s.moderate(content)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, id, actorID, isAdmin); err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateContent(ctx, id, cleaned)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if updated == nil {
		return nil, ErrCommentNotFound
	}
	return updated, nil
}

// Delete soft-deletes a comment under the same owner-or-admin rule as
// Update. Returns false when the comment was absent or already deleted.
func (s *Service) Delete(ctx context.Context, id, actorID string, isAdmin bool) (bool, error) {
	if err := s.authorize(ctx, id, actorID, isAdmin); err != nil {
		return false, err
	}

	deleted, err := s.Repo.SoftDelete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	return deleted, nil
}

// Like increments the like counter of a live comment and returns the
// updated row.
func (s *Service) Like(ctx context.Context, id string) (*repository.CommentWithAuthor, error) {
	if id == "" {
		return nil, ErrInvalidCommentID
	}
	liked, err := s.Repo.IncrementLikes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("like comment: %w", err)
	}
	if liked == nil {
		return nil, ErrCommentNotFound
	}
	return liked, nil
}

// moderate runs the word filter and the HTML sanitizer over new content.
func (s *Service) moderate(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", &entity.ValidationError{Field: "content", Message: "is required"}
	}
	if containsBlockedWord(content) {
		metrics.RecordCommentRejected()
		return "", ErrInappropriateContent
	}
	return s.sanitizer.Sanitize(content), nil
}

// authorize checks the owner-or-admin rule against the stored comment.
// Non-owners get not-found rather than forbidden, so comment existence is
// not leaked.
func (s *Service) authorize(ctx context.Context, id, actorID string, isAdmin bool) error {
	if id == "" {
		return ErrInvalidCommentID
	}
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}
	if existing == nil {
		return ErrCommentNotFound
	}
	if !isAdmin && existing.AuthorID != actorID {
		return ErrCommentNotFound
	}
	return nil
}
