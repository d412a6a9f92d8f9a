package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/respond"
)

type ctxKey string

const (
	ctxUserID ctxKey = "user_id"
	ctxRole   ctxKey = "role"
)

// UserIDFromContext returns the authenticated user's id, or "" when the
// request was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxUserID).(string); ok {
		return id
	}
	return ""
}

// RoleFromContext returns the authenticated user's role, or "" when the
// request was not authenticated.
func RoleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(ctxRole).(string); ok {
		return role
	}
	return ""
}

// Authz requires a valid JWT for every method on the wrapped handler and
// injects the user id and role into the request context.
func Authz(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := parseBearer(r.Header.Get("Authorization"), secret)
		if err != nil {
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, userID)
		ctx = context.WithValue(ctx, ctxRole, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly requires an authenticated admin. It must wrap a handler that
// is already behind Authz, or be used via Admin which composes both.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := RoleFromContext(r.Context())
		if role != entity.RoleAdmin {
			RecordForbiddenAttempt(role, r.Method)
			respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Admin composes Authz and AdminOnly for admin-only endpoints.
func Admin(next http.Handler) http.Handler {
	return Authz(AdminOnly(next))
}

// Optional attaches the user id and role to the context when a valid token
// is present, but lets unauthenticated requests through. Used on public
// read endpoints that personalize when a user is known.
func Optional(next http.Handler) http.Handler {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, role, err := parseBearer(r.Header.Get("Authorization"), secret); err == nil {
			ctx := context.WithValue(r.Context(), ctxUserID, userID)
			ctx = context.WithValue(ctx, ctxRole, role)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
