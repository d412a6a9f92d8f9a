// Package pathutil provides helpers for extracting and normalizing URL paths.
package pathutil

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID extracts a UUID path segment from a URL path.
// It removes the prefix, strips any trailing sub-resource segment, and
// validates that the remainder parses as a UUID.
//
// Example:
//
//	id, err := ExtractID("/articles/8f14e45f-.../comments", "/articles/")
//	// Returns: "8f14e45f-...", nil
func ExtractID(path, prefix string) (string, error) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == path {
		return "", ErrInvalidID
	}
	if idx := strings.IndexByte(rest, '/'); idx != -1 {
		rest = rest[:idx]
	}
	if _, err := uuid.Parse(rest); err != nil {
		return "", ErrInvalidID
	}
	return rest, nil
}
