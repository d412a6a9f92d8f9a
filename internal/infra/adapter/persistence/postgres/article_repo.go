package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"

	"github.com/lib/pq"
)

// selectArticle is the joined projection shared by every article read path:
// the article row plus author name, category name and the aggregated tag set.
const selectArticle = `
SELECT a.id, a.title, a.summary, a.content, a.cover_image_url,
       a.author_id, a.category_id, a.views, a.published_date,
       a.created_at, a.updated_at,
       u.username AS author_name,
       c.name AS category_name,
       ARRAY_AGG(at.tag) FILTER (WHERE at.tag IS NOT NULL) AS tags
FROM articles a
LEFT JOIN users u ON a.author_id = u.id
LEFT JOIN categories c ON a.category_id = c.id
LEFT JOIN article_tags at ON a.id = at.article_id`

const groupArticle = `GROUP BY a.id, u.username, c.name`

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticleRow(s rowScanner) (repository.ArticleWithMeta, error) {
	var (
		article      entity.Article
		authorName   sql.NullString
		categoryName sql.NullString
		tags         pq.StringArray
	)
	err := s.Scan(&article.ID, &article.Title, &article.Summary, &article.Content,
		&article.CoverImageURL, &article.AuthorID, &article.CategoryID,
		&article.Views, &article.PublishedDate, &article.CreatedAt,
		&article.UpdatedAt, &authorName, &categoryName, &tags)
	if err != nil {
		return repository.ArticleWithMeta{}, err
	}
	return repository.ArticleWithMeta{
		Article:      &article,
		AuthorName:   authorName.String,
		CategoryName: categoryName.String,
		Tags:         []string(tags),
	}, nil
}

func (repo *ArticleRepo) List(ctx context.Context, q repository.ArticleQuery) ([]repository.ArticleWithMeta, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(q.Filters)

	orderBy, err := repo.queryBuilder.BuildOrderBy(q.SortBy, q.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	// LIMIT/OFFSET are the only bindings beyond the shared filter set.
	paramIndex := len(args) + 1
	args = append(args, q.Limit, q.Offset)

	query := fmt.Sprintf(`%s
%s
%s
ORDER BY %s
LIMIT $%d OFFSET $%d`, selectArticle, whereClause, groupArticle, orderBy, paramIndex, paramIndex+1)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithMeta, 0, q.Limit)
	for rows.Next() {
		item, err := scanArticleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// Count runs the count twin of List: same builder invocation, same clauses,
// same parameter bindings, no ordering or pagination.
func (repo *ArticleRepo) Count(ctx context.Context, f repository.ArticleFilters) (int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(f)

	query := fmt.Sprintf(`
SELECT COUNT(DISTINCT a.id)
FROM articles a
LEFT JOIN users u ON a.author_id = u.id
LEFT JOIN categories c ON a.category_id = c.id
%s`, whereClause)

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*repository.ArticleWithMeta, error) {
	query := fmt.Sprintf(`%s
WHERE a.id = $1 AND a.deleted_at IS NULL
%s`, selectArticle, groupArticle)

	item, err := scanArticleRow(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &item, nil
}

// Create inserts the article row and its tag rows in one transaction.
// Any failure rolls the whole unit back so an article without its tags is
// never observable.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article, tags []string) (string, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertArticle = `
INSERT INTO articles (title, summary, content, cover_image_url, author_id, category_id, published_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	var id string
	err = tx.QueryRowContext(ctx, insertArticle,
		article.Title, article.Summary, article.Content, article.CoverImageURL,
		article.AuthorID, article.CategoryID, article.PublishedDate,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("Create: insert article: %w", err)
	}

	const insertTag = `INSERT INTO article_tags (article_id, tag) VALUES ($1, $2)`
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, insertTag, id, tag); err != nil {
			return "", fmt.Errorf("Create: insert tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("Create: commit: %w", err)
	}
	return id, nil
}

// Update applies the sparse field update and, when requested, replaces the
// whole tag set (delete all, insert all, never diffed) in one transaction.
// The row must be live: updating a soft-deleted or absent article affects
// zero rows and reports (false, nil).
func (repo *ArticleRepo) Update(ctx context.Context, id string, set repository.ArticleUpdate) (bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	assignments, args := repo.queryBuilder.BuildUpdateSet(set)
	if len(assignments) > 0 {
		assignments = append(assignments, "updated_at = NOW()")
		args = append(args, id)

		query := fmt.Sprintf(`
UPDATE articles
SET %s
WHERE id = $%d AND deleted_at IS NULL`, strings.Join(assignments, ", "), len(args))

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return false, fmt.Errorf("Update: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return false, nil
		}
	} else {
		// Tag-only update: still require a live article row.
		var exists bool
		const probe = `SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1 AND deleted_at IS NULL)`
		if err := tx.QueryRowContext(ctx, probe, id).Scan(&exists); err != nil {
			return false, fmt.Errorf("Update: probe: %w", err)
		}
		if !exists {
			return false, nil
		}
	}

	if set.ReplaceTags {
		if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = $1`, id); err != nil {
			return false, fmt.Errorf("Update: delete tags: %w", err)
		}
		const insertTag = `INSERT INTO article_tags (article_id, tag) VALUES ($1, $2)`
		for _, tag := range set.Tags {
			if _, err := tx.ExecContext(ctx, insertTag, id, tag); err != nil {
				return false, fmt.Errorf("Update: insert tag %q: %w", tag, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Update: commit: %w", err)
	}
	return true, nil
}

// SoftDelete marks the article's live comments deleted, then the article
// itself, in one transaction. A comment never remains visible after its
// parent article is gone, and neither mark survives without the other.
func (repo *ArticleRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("SoftDelete: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const deleteComments = `
UPDATE comments SET deleted_at = NOW()
WHERE article_id = $1 AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, deleteComments, id); err != nil {
		return false, fmt.Errorf("SoftDelete: comments: %w", err)
	}

	const deleteArticle = `
UPDATE articles SET deleted_at = NOW()
WHERE id = $1 AND deleted_at IS NULL`
	res, err := tx.ExecContext(ctx, deleteArticle, id)
	if err != nil {
		return false, fmt.Errorf("SoftDelete: article: %w", err)
	}
	deleted, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("SoftDelete: commit: %w", err)
	}
	return deleted > 0, nil
}

func (repo *ArticleRepo) IncrementViews(ctx context.Context, id string) error {
	const query = `
UPDATE articles SET views = views + 1
WHERE id = $1 AND deleted_at IS NULL`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("IncrementViews: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Popular(ctx context.Context, limit int) ([]repository.ArticleWithMeta, error) {
	query := fmt.Sprintf(`%s
WHERE a.deleted_at IS NULL
%s
ORDER BY a.views DESC
LIMIT $1`, selectArticle, groupArticle)
	return repo.queryMany(ctx, "Popular", query, limit)
}

func (repo *ArticleRepo) Recent(ctx context.Context, limit int) ([]repository.ArticleWithMeta, error) {
	query := fmt.Sprintf(`%s
WHERE a.deleted_at IS NULL
%s
ORDER BY a.published_date DESC
LIMIT $1`, selectArticle, groupArticle)
	return repo.queryMany(ctx, "Recent", query, limit)
}

func (repo *ArticleRepo) PublishedSince(ctx context.Context, since time.Time) ([]repository.ArticleWithMeta, error) {
	query := fmt.Sprintf(`%s
WHERE a.deleted_at IS NULL AND a.published_date >= $1
%s
ORDER BY a.published_date DESC`, selectArticle, groupArticle)
	return repo.queryMany(ctx, "PublishedSince", query, since)
}

func (repo *ArticleRepo) queryMany(ctx context.Context, op, query string, args ...any) ([]repository.ArticleWithMeta, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery(op, time.Since(start)) }()

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.ArticleWithMeta, 0, 16)
	for rows.Next() {
		item, err := scanArticleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
