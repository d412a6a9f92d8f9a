package article

import (
	"context"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP serves one article by id.
//
// @Summary      Get article detail
// @Tags         articles
// @Produce      json
// @Param        id path string true "article id"
// @Success      200 {object} DTO
// @Failure      400 {string} string "invalid article id"
// @Failure      404 {string} string "article not found"
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, artUC.ErrInvalidArticleID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, artUC.ErrArticleNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	// The view counter is best effort and must not delay the response.
	go func(articleID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.Svc.RecordView(ctx, articleID)
	}(id)

	respond.JSON(w, http.StatusOK, toDTO(*art, true))
}
