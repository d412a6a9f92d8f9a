// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as Article,
// Comment and User, along with their validation rules and domain-specific errors.
package entity

import "time"

// Article represents a news article in the system.
// DeletedAt is a soft-delete marker: a non-nil value means the article is
// invisible to every read path but the row is retained for history.
type Article struct {
	ID            string
	Title         string
	Summary       string
	Content       string
	CoverImageURL string
	AuthorID      string
	CategoryID    string
	Views         int64
	PublishedDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Comment represents a reader comment attached to an article.
// Comments are soft-deleted together with their parent article.
type Comment struct {
	ID        string
	ArticleID string
	AuthorID  string
	Content   string
	Likes     int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
