package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// selectComment is the joined projection shared by the comment read paths.
const selectComment = `
SELECT c.id, c.article_id, c.author_id, c.content, c.likes,
       c.created_at, c.updated_at,
       u.username AS author_name,
       u.profile_picture_url AS author_profile_picture_url
FROM comments c
LEFT JOIN users u ON c.author_id = u.id`

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) repository.CommentRepository {
	return &CommentRepo{db: db}
}

func scanCommentRow(s rowScanner) (repository.CommentWithAuthor, error) {
	var (
		comment    entity.Comment
		authorName sql.NullString
		pictureURL sql.NullString
	)
	err := s.Scan(&comment.ID, &comment.ArticleID, &comment.AuthorID,
		&comment.Content, &comment.Likes, &comment.CreatedAt,
		&comment.UpdatedAt, &authorName, &pictureURL)
	if err != nil {
		return repository.CommentWithAuthor{}, err
	}
	return repository.CommentWithAuthor{
		Comment:          &comment,
		AuthorName:       authorName.String,
		AuthorPictureURL: pictureURL.String,
	}, nil
}

func (repo *CommentRepo) ListByArticle(ctx context.Context, articleID string) ([]repository.CommentWithAuthor, error) {
	query := selectComment + `
WHERE c.article_id = $1 AND c.deleted_at IS NULL
ORDER BY c.created_at DESC`

	rows, err := repo.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("ListByArticle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.CommentWithAuthor, 0, 16)
	for rows.Next() {
		item, err := scanCommentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByArticle: Scan: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (repo *CommentRepo) Get(ctx context.Context, id string) (*entity.Comment, error) {
	const query = `
SELECT id, article_id, author_id, content, likes, created_at, updated_at
FROM comments
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	var comment entity.Comment
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&comment.ID, &comment.ArticleID, &comment.AuthorID,
			&comment.Content, &comment.Likes, &comment.CreatedAt, &comment.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &comment, nil
}

func (repo *CommentRepo) Create(ctx context.Context, c *entity.Comment) (*repository.CommentWithAuthor, error) {
	const query = `
INSERT INTO comments (article_id, author_id, content)
VALUES ($1, $2, $3)
RETURNING id`
	var id string
	err := repo.db.QueryRowContext(ctx, query, c.ArticleID, c.AuthorID, c.Content).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return repo.getWithAuthor(ctx, "Create", id)
}

func (repo *CommentRepo) UpdateContent(ctx context.Context, id, content string) (*repository.CommentWithAuthor, error) {
	const query = `
UPDATE comments
SET content = $1, updated_at = NOW()
WHERE id = $2 AND deleted_at IS NULL
RETURNING id`
	var updated string
	err := repo.db.QueryRowContext(ctx, query, content, id).Scan(&updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateContent: %w", err)
	}
	return repo.getWithAuthor(ctx, "UpdateContent", updated)
}

func (repo *CommentRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	const query = `
UPDATE comments SET deleted_at = NOW()
WHERE id = $1 AND deleted_at IS NULL`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("SoftDelete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (repo *CommentRepo) IncrementLikes(ctx context.Context, id string) (*repository.CommentWithAuthor, error) {
	const query = `
UPDATE comments SET likes = likes + 1
WHERE id = $1 AND deleted_at IS NULL
RETURNING id`
	var updated string
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("IncrementLikes: %w", err)
	}
	return repo.getWithAuthor(ctx, "IncrementLikes", updated)
}

// getWithAuthor re-reads the joined row so responses always reflect stored
// state, including server-set timestamps.
func (repo *CommentRepo) getWithAuthor(ctx context.Context, op, id string) (*repository.CommentWithAuthor, error) {
	query := selectComment + `
WHERE c.id = $1
LIMIT 1`
	item, err := scanCommentRow(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: reread: %w", op, err)
	}
	return &item, nil
}
