// Package repository defines the persistence interfaces consumed by the
// usecase layer, together with the query/filter value types they accept.
package repository

import (
	"context"
	"errors"
	"time"

	"newsdesk/internal/domain/entity"
)

// SortField is a validated article sort column. Only values from the
// allow-list below may reach the SQL layer.
type SortField string

// SortOrder is a validated sort direction.
type SortOrder string

const (
	SortByCreatedAt     SortField = "created_at"
	SortByPublishedDate SortField = "published_date"
	SortByViews         SortField = "views"
	SortByTitle         SortField = "title"

	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ErrUnknownSortField is returned when a caller supplies a sort field outside
// the allow-list. An unspecified field falls back to the default instead.
var ErrUnknownSortField = errors.New("unknown sort field")

// ParseSortField maps a raw query value to a SortField.
// An empty value selects the default (published date); anything not on the
// allow-list is an error, never a silent fallback.
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case "":
		return SortByPublishedDate, nil
	case SortByCreatedAt, SortByPublishedDate, SortByViews, SortByTitle:
		return SortField(s), nil
	default:
		return "", ErrUnknownSortField
	}
}

// ParseSortOrder maps a raw query value to a SortOrder, defaulting to
// descending. The comparison is case-insensitive for "asc"/"desc".
func ParseSortOrder(s string) (SortOrder, error) {
	switch s {
	case "", "DESC", "desc":
		return SortDesc, nil
	case "ASC", "asc":
		return SortAsc, nil
	default:
		return "", errors.New("unknown sort order")
	}
}

// ArticleFilters contains the optional conjunctive filters for article search.
// All three are combined with AND; absent values add no clause.
type ArticleFilters struct {
	Search   string // case-insensitive substring against title/summary/content
	Category string // category slug equality
	Author   string // author username equality
}

// ArticleQuery is a full list request: filters plus ordering and pagination.
type ArticleQuery struct {
	Filters   ArticleFilters
	SortBy    SortField
	SortOrder SortOrder
	Offset    int
	Limit     int
}

// ArticleUpdate is a sparse set of article field changes. Nil pointers leave
// the stored value untouched. ReplaceTags distinguishes "replace the tag set
// with Tags (possibly empty)" from "leave tags alone".
type ArticleUpdate struct {
	Title         *string
	Summary       *string
	Content       *string
	CategoryID    *string
	PublishedDate *time.Time
	CoverImageURL *string
	Tags          []string
	ReplaceTags   bool
}

// IsEmpty reports whether the update would change nothing at all.
func (u ArticleUpdate) IsEmpty() bool {
	return u.Title == nil && u.Summary == nil && u.Content == nil &&
		u.CategoryID == nil && u.PublishedDate == nil &&
		u.CoverImageURL == nil && !u.ReplaceTags
}

// ArticleWithMeta is an article joined with its author name, category name
// and aggregated tag set, as returned by every read path.
type ArticleWithMeta struct {
	Article      *entity.Article
	AuthorName   string
	CategoryName string
	Tags         []string
}

// ArticleRepository is the persistence boundary for articles and their tag
// associations. Multi-row writes (Create, Update, SoftDelete) run as single
// transactions; a failure anywhere rolls the whole unit back.
type ArticleRepository interface {
	// List returns one page of active articles matching the query.
	List(ctx context.Context, q ArticleQuery) ([]ArticleWithMeta, error)
	// Count returns the total number of active articles matching the same
	// filters as List. The WHERE clause and bound parameters are identical
	// to the ones List uses, so the count and the page never disagree.
	Count(ctx context.Context, f ArticleFilters) (int64, error)
	// Get returns one active article by id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*ArticleWithMeta, error)
	// Create inserts the article row and one row per tag atomically and
	// returns the new id.
	Create(ctx context.Context, article *entity.Article, tags []string) (string, error)
	// Update applies a sparse field update (and tag replacement when
	// requested) atomically. Returns false when the article does not exist
	// or is soft-deleted; no rows are changed in that case.
	Update(ctx context.Context, id string, set ArticleUpdate) (bool, error)
	// SoftDelete marks the article's live comments deleted, then the
	// article itself, in one transaction. Returns false when the article
	// was absent or already deleted.
	SoftDelete(ctx context.Context, id string) (bool, error)
	// IncrementViews adds 1 to the view counter of an active article.
	IncrementViews(ctx context.Context, id string) error
	// Popular returns up to limit active articles by views descending.
	Popular(ctx context.Context, limit int) ([]ArticleWithMeta, error)
	// Recent returns up to limit active articles by publish date descending.
	Recent(ctx context.Context, limit int) ([]ArticleWithMeta, error)
	// PublishedSince returns active articles published on or after the
	// given instant, newest first. Used by the newsletter digest.
	PublishedSince(ctx context.Context, since time.Time) ([]ArticleWithMeta, error)
}
