package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params carries the page/limit pair of a list request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// ParseQueryParams reads page and limit from the query string. Absent
// parameters take the configured defaults; a supplied value that is not a
// positive integer, or a limit above config.MaxLimit, is an error.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{Page: config.DefaultPage, Limit: config.DefaultLimit}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = n
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = n
	}

	return params, nil
}
