// Package comment provides HTTP handlers for article comments: public
// listing, authenticated create/edit/delete with the owner-or-admin rule,
// and the like counter.
package comment

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/repository"
	commentUC "newsdesk/internal/usecase/comment"
)

// DTO represents the JSON structure for comment data transfer.
type DTO struct {
	ID               string    `json:"id"`
	ArticleID        string    `json:"articleId"`
	AuthorID         string    `json:"authorId"`
	AuthorName       string    `json:"authorName"`
	AuthorPictureURL string    `json:"authorPictureUrl,omitempty"`
	Content          string    `json:"content"`
	Likes            int64     `json:"likes"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toDTO(c repository.CommentWithAuthor) DTO {
	return DTO{
		ID:               c.Comment.ID,
		ArticleID:        c.Comment.ArticleID,
		AuthorID:         c.Comment.AuthorID,
		AuthorName:       c.AuthorName,
		AuthorPictureURL: c.AuthorPictureURL,
		Content:          c.Comment.Content,
		Likes:            c.Comment.Likes,
		CreatedAt:        c.Comment.CreatedAt,
		UpdatedAt:        c.Comment.UpdatedAt,
	}
}

type contentRequest struct {
	Content string `json:"content"`
}

// ListHandler serves the comments of one article, newest first.
//
// @Summary      List article comments
// @Tags         comments
// @Produce      json
// @Param        id path string true "article id"
// @Success      200 {array} DTO
// @Router       /articles/{id}/comments [get]
type ListHandler struct{ Svc *commentUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	comments, err := h.Svc.ListByArticle(r.Context(), articleID)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, toDTO(c))
	}
	respond.JSON(w, http.StatusOK, dtos)
}

// CreateHandler posts a comment on an article as the authenticated user.
//
// @Summary      Post a comment
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "article id"
// @Param        request body contentRequest true "comment content"
// @Success      201 {object} DTO
// @Failure      400 {string} string "validation or moderation failed"
// @Router       /articles/{id}/comments [post]
type CreateHandler struct{ Svc *commentUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	created, err := h.Svc.Create(r.Context(), articleID, auth.UserIDFromContext(r.Context()), req.Content)
	if err != nil {
		respond.SafeError(w, commentErrorCode(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(*created))
}

// UpdateHandler edits a comment under the owner-or-admin rule.
//
// @Summary      Edit a comment
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "comment id"
// @Param        request body contentRequest true "new content"
// @Success      200 {object} DTO
// @Failure      404 {string} string "comment not found"
// @Router       /comments/{id} [put]
type UpdateHandler struct{ Svc *commentUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/comments/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	ctx := r.Context()
	isAdmin := auth.RoleFromContext(ctx) == entity.RoleAdmin
	updated, err := h.Svc.Update(ctx, id, auth.UserIDFromContext(ctx), isAdmin, req.Content)
	if err != nil {
		respond.SafeError(w, commentErrorCode(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(*updated))
}

// DeleteHandler removes a comment under the owner-or-admin rule.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id path string true "comment id"
// @Success      204 {string} string "deleted"
// @Failure      404 {string} string "comment not found"
// @Router       /comments/{id} [delete]
type DeleteHandler struct{ Svc *commentUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/comments/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	isAdmin := auth.RoleFromContext(ctx) == entity.RoleAdmin
	deleted, err := h.Svc.Delete(ctx, id, auth.UserIDFromContext(ctx), isAdmin)
	if err != nil {
		respond.SafeError(w, commentErrorCode(err), err)
		return
	}
	if !deleted {
		respond.SafeError(w, http.StatusNotFound, commentUC.ErrCommentNotFound)
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

// LikeHandler increments a comment's like counter.
//
// @Summary      Like a comment
// @Tags         comments
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "comment id"
// @Success      200 {object} DTO
// @Failure      404 {string} string "comment not found"
// @Router       /comments/{id}/like [post]
type LikeHandler struct{ Svc *commentUC.Service }

func (h LikeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/comments/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	liked, err := h.Svc.Like(r.Context(), id)
	if err != nil {
		respond.SafeError(w, commentErrorCode(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(*liked))
}

// commentErrorCode maps usecase errors onto HTTP status codes.
func commentErrorCode(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, commentUC.ErrInvalidCommentID),
		errors.Is(err, commentUC.ErrInappropriateContent):
		return http.StatusBadRequest
	case errors.Is(err, commentUC.ErrCommentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Register mounts the comment routes on the mux. Listing is public; every
// write requires authentication.
func Register(mux *http.ServeMux, svc *commentUC.Service) {
	mux.Handle("GET /articles/{id}/comments", ListHandler{svc})
	mux.Handle("POST /articles/{id}/comments", auth.Authz(CreateHandler{svc}))
	mux.Handle("PUT /comments/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /comments/", auth.Authz(DeleteHandler{svc}))
	mux.Handle("POST /comments/{id}/like", auth.Authz(LikeHandler{svc}))
}
