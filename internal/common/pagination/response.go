package pagination

// Metadata is the pagination block of a list response. Total comes from the
// count query that shares its filter clauses with the page fetch, so the
// metadata can never disagree with the data it accompanies.
type Metadata struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewMetadata derives the response metadata from the request params and
// the matching total.
func NewMetadata(params Params, total int64) Metadata {
	return Metadata{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}

// Response is the envelope shared by every paginated endpoint.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse wraps one page of items with its metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{Data: data, Pagination: metadata}
}
