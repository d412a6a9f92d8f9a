// Package article provides HTTP handlers for article endpoints: listing
// with filters and pagination, detail reads with view counting, and the
// admin write operations.
package article

import (
	"encoding/json"
	"strings"
	"time"

	"newsdesk/internal/repository"
	artUC "newsdesk/internal/usecase/article"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Content       string    `json:"content,omitempty"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	AuthorID      string    `json:"authorId"`
	AuthorName    string    `json:"authorName"`
	CategoryID    string    `json:"categoryId"`
	CategoryName  string    `json:"categoryName"`
	Tags          []string  `json:"tags"`
	Views         int64     `json:"views"`
	PublishedDate time.Time `json:"publishedDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// toDTO converts a joined repository row. Summaries and tags are always
// present; content is included only on detail reads (includeContent).
func toDTO(m repository.ArticleWithMeta, includeContent bool) DTO {
	a := m.Article
	out := DTO{
		ID:            a.ID,
		Title:         a.Title,
		Summary:       a.Summary,
		CoverImageURL: a.CoverImageURL,
		AuthorID:      a.AuthorID,
		AuthorName:    m.AuthorName,
		CategoryID:    a.CategoryID,
		CategoryName:  m.CategoryName,
		Tags:          m.Tags,
		Views:         a.Views,
		PublishedDate: a.PublishedDate,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if includeContent {
		out.Content = a.Content
	}
	return out
}

// tagList accepts tags as either a JSON array of strings or a single
// comma-separated string, which is how multipart-form clients send them.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var asArray []string
	if err := json.Unmarshal(data, &asArray); err == nil {
		*t = asArray
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}
	if strings.TrimSpace(asString) == "" {
		*t = []string{}
		return nil
	}
	*t = artUC.SplitTags(asString)
	return nil
}
