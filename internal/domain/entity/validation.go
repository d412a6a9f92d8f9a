package entity

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	maxTitleLength   = 300
	maxSummaryLength = 2000
)

// ValidateArticleFields checks the required text fields of a new article.
// Returns a ValidationError naming the first field that fails.
func ValidateArticleFields(title, summary, content string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must not exceed %d characters", maxTitleLength),
		}
	}
	if strings.TrimSpace(summary) == "" {
		return &ValidationError{Field: "summary", Message: "is required"}
	}
	if len(summary) > maxSummaryLength {
		return &ValidationError{
			Field:   "summary",
			Message: fmt.Sprintf("must not exceed %d characters", maxSummaryLength),
		}
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	return nil
}

// ValidateEmail checks that the address parses as a single RFC 5322 address.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	return nil
}
