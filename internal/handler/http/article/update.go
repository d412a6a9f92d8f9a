package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type updateRequest struct {
	Title         *string    `json:"title"`
	Summary       *string    `json:"summary"`
	Content       *string    `json:"content"`
	CategoryID    *string    `json:"categoryId"`
	PublishedDate *time.Time `json:"publishedDate"`
	CoverImageURL *string    `json:"coverImageUrl"`
	Tags          *tagList   `json:"tags"`
}

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP applies a sparse article update. Absent fields keep their
// stored values; an explicit empty tags list clears the tag set.
//
// @Summary      Update article
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "article id"
// @Param        request body updateRequest true "fields to update"
// @Success      200 {object} DTO
// @Failure      400 {string} string "validation failed"
// @Failure      404 {string} string "article not found"
// @Router       /articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	in := artUC.UpdateInput{
		ID:            id,
		Title:         req.Title,
		Summary:       req.Summary,
		Content:       req.Content,
		CategoryID:    req.CategoryID,
		PublishedDate: req.PublishedDate,
		CoverImageURL: req.CoverImageURL,
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
		in.TagsProvided = true
	}

	updated, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		code := http.StatusInternalServerError
		var verr *entity.ValidationError
		switch {
		case errors.As(err, &verr),
			errors.Is(err, artUC.ErrInvalidArticleID),
			errors.Is(err, artUC.ErrNothingToUpdate):
			code = http.StatusBadRequest
		case errors.Is(err, artUC.ErrArticleNotFound):
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(*updated, true))
}
