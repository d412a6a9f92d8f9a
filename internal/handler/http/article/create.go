package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type createRequest struct {
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Content       string    `json:"content"`
	CategoryID    string    `json:"categoryId"`
	PublishedDate time.Time `json:"publishedDate"`
	Tags          tagList   `json:"tags"`
	CoverImageURL string    `json:"coverImageUrl"`
}

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP creates an article. Admin only; the author is the
// authenticated user.
//
// @Summary      Create article
// @Tags         articles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body createRequest true "article fields"
// @Success      201 {object} DTO
// @Failure      400 {string} string "validation failed"
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	created, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title:         req.Title,
		Summary:       req.Summary,
		Content:       req.Content,
		CategoryID:    req.CategoryID,
		PublishedDate: req.PublishedDate,
		Tags:          req.Tags,
		AuthorID:      auth.UserIDFromContext(r.Context()),
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(*created, true))
}
