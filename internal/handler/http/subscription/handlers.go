// Package subscription provides HTTP handlers for newsletter subscriptions.
package subscription

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/respond"
	subUC "newsdesk/internal/usecase/subscription"
)

// DTO represents the JSON structure for subscription data transfer.
type DTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toDTO(s *entity.Subscription) DTO {
	return DTO{
		ID:        s.ID,
		UserID:    s.UserID,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}

// SubscribeHandler enrolls the authenticated user in the newsletter.
//
// @Summary      Subscribe to the newsletter
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      201 {object} DTO
// @Router       /subscriptions [post]
type SubscribeHandler struct{ Svc *subUC.Service }

func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, err := h.Svc.Subscribe(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respond.SafeError(w, subscriptionErrorCode(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(sub))
}

// UnsubscribeHandler removes the authenticated user's subscription.
//
// @Summary      Unsubscribe from the newsletter
// @Tags         subscriptions
// @Security     BearerAuth
// @Success      204 {string} string "unsubscribed"
// @Failure      404 {string} string "subscription not found"
// @Router       /subscriptions [delete]
type UnsubscribeHandler struct{ Svc *subUC.Service }

func (h UnsubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Unsubscribe(r.Context(), auth.UserIDFromContext(r.Context())); err != nil {
		respond.SafeError(w, subscriptionErrorCode(err), err)
		return
	}
	respond.JSON(w, http.StatusNoContent, nil)
}

// StatusHandler reports whether the authenticated user is subscribed.
//
// @Summary      Subscription status
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]bool
// @Router       /subscriptions/status [get]
type StatusHandler struct{ Svc *subUC.Service }

func (h StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	active, err := h.Svc.Status(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respond.SafeError(w, subscriptionErrorCode(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"subscribed": active})
}

// The trigger always sends the past week's digest under a fixed subject.
const (
	digestDays    = 7
	digestSubject = "Check Out Our Latest Football News!"
	digestTimeout = 5 * time.Minute
)

// SendHandler starts a newsletter delivery to every active subscriber.
// The run happens in the background; the response only acknowledges that
// it started.
//
// @Summary      Trigger a newsletter delivery
// @Tags         subscriptions
// @Security     BearerAuth
// @Produce      json
// @Success      202 {object} map[string]string
// @Router       /subscriptions/send-notification [post]
type SendHandler struct{ News *subUC.Newsletter }

func (h SendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()
		if _, err := h.News.Send(ctx, digestDays, digestSubject); err != nil {
			slog.Error("newsletter delivery failed", slog.Any("error", err))
		}
	}()
	respond.JSON(w, http.StatusAccepted, map[string]string{
		"message": "newsletter delivery started",
	})
}

func subscriptionErrorCode(err error) int {
	switch {
	case errors.Is(err, subUC.ErrInvalidUserID):
		return http.StatusBadRequest
	case errors.Is(err, subUC.ErrSubscriptionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Register mounts the subscription routes on the mux. The first three act
// on the authenticated user; the delivery trigger is admin-only.
func Register(mux *http.ServeMux, svc *subUC.Service, news *subUC.Newsletter) {
	mux.Handle("POST /subscriptions", auth.Authz(SubscribeHandler{svc}))
	mux.Handle("DELETE /subscriptions", auth.Authz(UnsubscribeHandler{svc}))
	mux.Handle("GET /subscriptions/status", auth.Authz(StatusHandler{svc}))
	mux.Handle("POST /subscriptions/send-notification", auth.Admin(SendHandler{news}))
}
