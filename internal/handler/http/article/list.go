package article

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/common/pagination"
	"newsdesk/internal/handler/http/requestid"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/repository"
	artUC "newsdesk/internal/usecase/article"
)

type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP serves the article list.
//
// @Summary      List articles with filters and pagination
// @Tags         articles
// @Produce      json
// @Param        page      query int    false "page number (1-based)" default(1)
// @Param        limit     query int    false "items per page" default(10) maximum(100)
// @Param        search    query string false "case-insensitive match on title, summary, content"
// @Param        category  query string false "category slug"
// @Param        author    query string false "author username"
// @Param        sortBy    query string false "published_date | created_at | views | title" default(published_date)
// @Param        sortOrder query string false "asc | desc" default(desc)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {string} string "invalid query parameters"
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	q := r.URL.Query()

	sortBy, err := repository.ParseSortField(q.Get("sortBy"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid sortBy parameter"))
		return
	}
	sortOrder, err := repository.ParseSortOrder(q.Get("sortOrder"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid sortOrder parameter"))
		return
	}

	in := artUC.ListInput{
		Params: params,
		Filters: repository.ArticleFilters{
			Search:   q.Get("search"),
			Category: q.Get("category"),
			Author:   q.Get("author"),
		},
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}

	result, err := h.Svc.List(ctx, in)
	if err != nil {
		logger.Error("failed to list articles",
			"error", err.Error(),
			"page", params.Page,
			"limit", params.Limit,
			"request_id", reqID)
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Data))
	for _, item := range result.Data {
		dtos = append(dtos, toDTO(item, false))
	}

	response := pagination.NewResponse(dtos, result.Pagination)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.Pagination.Total)

	logger.Info("paginated article list",
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", len(dtos),
		"duration_ms", duration.Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, response)
}
