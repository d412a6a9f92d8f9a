package article

import (
	"net/http"
	"strconv"

	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/repository"
	artUC "newsdesk/internal/usecase/article"
)

// PopularHandler serves the most viewed articles.
//
// @Summary      Most viewed articles
// @Tags         articles
// @Produce      json
// @Param        limit query int false "max items" default(5)
// @Success      200 {array} DTO
// @Router       /articles/popular [get]
type PopularHandler struct{ Svc *artUC.Service }

func (h PopularHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Popular(r.Context(), parseLimit(r))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

// RecentHandler serves the most recently published articles.
//
// @Summary      Recently published articles
// @Tags         articles
// @Produce      json
// @Param        limit query int false "max items" default(5)
// @Success      200 {array} DTO
// @Router       /articles/recent [get]
type RecentHandler struct{ Svc *artUC.Service }

func (h RecentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Recent(r.Context(), parseLimit(r))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func toDTOs(articles []repository.ArticleWithMeta) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a, false))
	}
	return out
}
