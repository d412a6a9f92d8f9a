// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"newsdesk/internal/repository"
)

// sortColumns is the allow-list mapping validated sort fields to the columns
// they order by. Nothing outside this map ever reaches the ORDER BY clause.
var sortColumns = map[repository.SortField]string{
	repository.SortByCreatedAt:     "a.created_at",
	repository.SortByPublishedDate: "a.published_date",
	repository.SortByViews:         "a.views",
	repository.SortByTitle:         "a.title",
}

// ArticleQueryBuilder builds the WHERE and SET clauses for article queries.
// The same BuildWhereClause invocation feeds both the paginated SELECT and
// the COUNT query, so their filter clauses and bound parameters are always
// identical; only ordering and LIMIT/OFFSET are appended afterwards.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and bound arguments for the given
// filters. The soft-delete guard is always the first condition; the three
// optional filters are conjunctive. Parameter numbering starts at $1.
func (qb *ArticleQueryBuilder) BuildWhereClause(f repository.ArticleFilters) (clause string, args []any) {
	conditions := []string{"a.deleted_at IS NULL"}
	paramIndex := 1

	if f.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(a.title ILIKE $%d OR a.summary ILIKE $%d OR a.content ILIKE $%d)",
			paramIndex, paramIndex, paramIndex))
		args = append(args, "%"+escapeILIKE(f.Search)+"%")
		paramIndex++
	}

	if f.Category != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", paramIndex))
		args = append(args, f.Category)
		paramIndex++
	}

	if f.Author != "" {
		conditions = append(conditions, fmt.Sprintf("u.username = $%d", paramIndex))
		args = append(args, f.Author)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildOrderBy maps a validated sort field and direction to an ORDER BY
// expression. An unrecognized field is an error, never a fallback.
func (qb *ArticleQueryBuilder) BuildOrderBy(sortBy repository.SortField, order repository.SortOrder) (string, error) {
	col, ok := sortColumns[sortBy]
	if !ok {
		return "", fmt.Errorf("BuildOrderBy: %w: %q", repository.ErrUnknownSortField, sortBy)
	}
	dir := "DESC"
	if order == repository.SortAsc {
		dir = "ASC"
	}
	return col + " " + dir, nil
}

// BuildUpdateSet builds the SET assignments and bound arguments for a sparse
// article update. Only supplied fields produce assignments; the caller
// appends the unconditional updated_at refresh and the WHERE binding.
// Parameter numbering starts at $1.
func (qb *ArticleQueryBuilder) BuildUpdateSet(set repository.ArticleUpdate) (assignments []string, args []any) {
	add := func(column string, value any) {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if set.Title != nil {
		add("title", *set.Title)
	}
	if set.Summary != nil {
		add("summary", *set.Summary)
	}
	if set.Content != nil {
		add("content", *set.Content)
	}
	if set.CategoryID != nil {
		add("category_id", *set.CategoryID)
	}
	if set.PublishedDate != nil {
		add("published_date", *set.PublishedDate)
	}
	if set.CoverImageURL != nil {
		add("cover_image_url", *set.CoverImageURL)
	}
	return assignments, args
}

// escapeILIKE escapes the ILIKE pattern metacharacters so user search text
// matches literally.
func escapeILIKE(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
