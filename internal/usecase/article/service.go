package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsdesk/internal/common/pagination"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// defaultListLimit bounds the popular/recent variants when the caller
// supplies no limit.
const defaultListLimit = 5

// ListInput is a full article list request: pagination, optional
// conjunctive filters, and validated ordering.
type ListInput struct {
	Params    pagination.Params
	Filters   repository.ArticleFilters
	SortBy    repository.SortField
	SortOrder repository.SortOrder
}

// CreateInput represents the input parameters for creating a new article.
// AuthorID comes from the authenticated actor and CoverImageURL from the
// upload step; both are assumed valid at the storage-constraint level.
type CreateInput struct {
	Title         string
	Summary       string
	Content       string
	CategoryID    string
	PublishedDate time.Time
	Tags          []string
	AuthorID      string
	CoverImageURL string
}

// UpdateInput represents a sparse article update. Nil pointers leave the
// stored value untouched. TagsProvided distinguishes "replace the tag set
// with Tags, possibly clearing it" from "tags not mentioned".
type UpdateInput struct {
	ID            string
	Title         *string
	Summary       *string
	Content       *string
	CategoryID    *string
	PublishedDate *time.Time
	CoverImageURL *string
	Tags          []string
	TagsProvided  bool
}

// PaginatedResult contains one page of articles plus pagination metadata.
type PaginatedResult struct {
	Data       []repository.ArticleWithMeta
	Pagination pagination.Metadata
}

// Service provides article management use cases. It delegates persistence
// and transactional consistency to the repository; no in-process locking is
// added on top of the store's row-level serialization.
type Service struct {
	Repo   repository.ArticleRepository
	Logger *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// List retrieves one page of articles matching the input. The total count is
// computed with the exact same filter clauses and bindings as the page
// fetch, so the metadata can never disagree with the data.
// An empty result is a normal outcome, not an error.
func (s *Service) List(ctx context.Context, in ListInput) (*PaginatedResult, error) {
	total, err := s.Repo.Count(ctx, in.Filters)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	articles, err := s.Repo.List(ctx, repository.ArticleQuery{
		Filters:   in.Filters,
		SortBy:    in.SortBy,
		SortOrder: in.SortOrder,
		Offset:    pagination.CalculateOffset(in.Params.Page, in.Params.Limit),
		Limit:     in.Params.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return &PaginatedResult{
		Data:       articles,
		Pagination: pagination.NewMetadata(in.Params, total),
	}, nil
}

// Get retrieves a single active article by its ID.
// Returns ErrArticleNotFound when the article is absent or soft-deleted.
func (s *Service) Get(ctx context.Context, id string) (*repository.ArticleWithMeta, error) {
	if id == "" {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}

// RecordView increments the article's view counter as a best-effort side
// effect of a successful read. A failure here is logged and swallowed; it
// must never affect the read that triggered it.
func (s *Service) RecordView(ctx context.Context, id string) {
	if err := s.Repo.IncrementViews(ctx, id); err != nil {
		metrics.RecordArticleView(false)
		s.logger().Warn("view counter increment failed",
			slog.String("article_id", id),
			slog.Any("error", err))
		return
	}
	metrics.RecordArticleView(true)
}

// Create validates the input and inserts the article together with its
// normalized tags in one transaction. On success the full joined row is
// re-read and returned, so the response matches what a fresh Get would show.
func (s *Service) Create(ctx context.Context, in CreateInput) (*repository.ArticleWithMeta, error) {
	if err := entity.ValidateArticleFields(in.Title, in.Summary, in.Content); err != nil {
		return nil, err
	}
	if in.CategoryID == "" {
		return nil, &entity.ValidationError{Field: "categoryID", Message: "is required"}
	}
	if in.AuthorID == "" {
		return nil, &entity.ValidationError{Field: "authorID", Message: "is required"}
	}
	if in.PublishedDate.IsZero() {
		return nil, &entity.ValidationError{Field: "publishedDate", Message: "is required"}
	}

	art := &entity.Article{
		Title:         in.Title,
		Summary:       in.Summary,
		Content:       in.Content,
		CoverImageURL: in.CoverImageURL,
		AuthorID:      in.AuthorID,
		CategoryID:    in.CategoryID,
		PublishedDate: in.PublishedDate,
	}

	id, err := s.Repo.Create(ctx, art, NormalizeTags(in.Tags))
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	created, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reread created article: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("reread created article %s: %w", id, ErrArticleNotFound)
	}
	return created, nil
}

// Update applies a sparse field update and optional tag replacement in one
// transaction. Supplying nothing at all is a validation failure, not a
// no-op. Returns ErrArticleNotFound when the article is absent or deleted.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*repository.ArticleWithMeta, error) {
	if in.ID == "" {
		return nil, ErrInvalidArticleID
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, &entity.ValidationError{Field: "title", Message: "cannot be empty"}
		}
	}
	if in.Summary != nil && *in.Summary == "" {
		return nil, &entity.ValidationError{Field: "summary", Message: "cannot be empty"}
	}
	if in.Content != nil && *in.Content == "" {
		return nil, &entity.ValidationError{Field: "content", Message: "cannot be empty"}
	}

	set := repository.ArticleUpdate{
		Title:         in.Title,
		Summary:       in.Summary,
		Content:       in.Content,
		CategoryID:    in.CategoryID,
		PublishedDate: in.PublishedDate,
		CoverImageURL: in.CoverImageURL,
	}
	if in.TagsProvided {
		// An explicit empty list clears every tag; only absence means
		// "leave the tag set alone".
		set.Tags = NormalizeTags(in.Tags)
		set.ReplaceTags = true
	}
	if set.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	ok, err := s.Repo.Update(ctx, in.ID, set)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if !ok {
		return nil, ErrArticleNotFound
	}

	updated, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("reread updated article: %w", err)
	}
	if updated == nil {
		return nil, ErrArticleNotFound
	}
	return updated, nil
}

// Delete soft-deletes the article and cascades the mark to its live
// comments in the same transaction. Returns false when the article was
// absent or already deleted.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrInvalidArticleID
	}

	deleted, err := s.Repo.SoftDelete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	return deleted, nil
}

// Popular returns the most viewed active articles, bounded by limit.
func (s *Service) Popular(ctx context.Context, limit int) ([]repository.ArticleWithMeta, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	articles, err := s.Repo.Popular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("popular articles: %w", err)
	}
	return articles, nil
}

// Recent returns the most recently published active articles, bounded by limit.
func (s *Service) Recent(ctx context.Context, limit int) ([]repository.ArticleWithMeta, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	articles, err := s.Repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent articles: %w", err)
	}
	return articles, nil
}

// RecentByTimeFrame returns active articles published within the last
// `days` days, newest first. The newsletter digest is built from this.
func (s *Service) RecentByTimeFrame(ctx context.Context, days int) ([]repository.ArticleWithMeta, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	articles, err := s.Repo.PublishedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("recent articles by time frame: %w", err)
	}
	return articles, nil
}
