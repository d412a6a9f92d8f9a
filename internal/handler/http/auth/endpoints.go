package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/requestid"
	"newsdesk/internal/handler/http/respond"
	userUC "newsdesk/internal/usecase/user"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
	}
}

// RegisterHandler creates accounts and returns a token for the new user.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "account details"
// @Success      201 {object} authResponse
// @Failure      400 {string} string "validation failed"
// @Router       /auth/register [post]
func RegisterHandler(svc *userUC.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest("register", "failure")
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		user, err := svc.Register(r.Context(), userUC.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			RecordAuthRequest("register", "failure")
			RecordAuthDuration("register", time.Since(start).Seconds())
			var verr *entity.ValidationError
			if errors.As(err, &verr) {
				respond.SafeError(w, http.StatusBadRequest, err)
				return
			}
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		token, err := GenerateToken(user)
		if err != nil {
			logger.Error("token generation failed", slog.String("error", err.Error()))
			RecordAuthRequest("register", "failure")
			respond.SafeError(w, http.StatusInternalServerError, errors.New("token generation failed"))
			return
		}

		logger.Info("account registered",
			slog.String("user_id", user.ID),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("register", "success")
		RecordAuthDuration("register", time.Since(start).Seconds())

		respond.JSON(w, http.StatusCreated, authResponse{Token: token, User: toUserDTO(user)})
	}
}

// LoginHandler verifies credentials and issues a JWT.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "credentials"
// @Success      200 {object} authResponse
// @Failure      401 {string} string "invalid credentials"
// @Router       /auth/login [post]
func LoginHandler(svc *userUC.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest("login", "failure")
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			logger.Warn("authentication failed",
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("login", "failure")
			RecordAuthDuration("login", time.Since(start).Seconds())
			if errors.Is(err, userUC.ErrInvalidCredentials) {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("invalid email or password"))
				return
			}
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		token, err := GenerateToken(user)
		if err != nil {
			logger.Error("token generation failed", slog.String("error", err.Error()))
			RecordAuthRequest("login", "failure")
			respond.SafeError(w, http.StatusInternalServerError, errors.New("token generation failed"))
			return
		}

		logger.Info("authentication successful",
			slog.String("user_id", user.ID),
			slog.String("role", user.Role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("login", "success")
		RecordAuthDuration("login", time.Since(start).Seconds())

		respond.JSON(w, http.StatusOK, authResponse{Token: token, User: toUserDTO(user)})
	}
}

type updateProfileRequest struct {
	Username          *string `json:"username"`
	Email             *string `json:"email"`
	Password          *string `json:"password"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

// ProfileHandler serves the authenticated user's profile: GET returns it,
// PUT applies a sparse update. Must be mounted behind Authz.
func ProfileHandler(svc *userUC.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserIDFromContext(r.Context())
		if userID == "" {
			respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}

		switch r.Method {
		case http.MethodGet:
			user, err := svc.Get(r.Context(), userID)
			if err != nil {
				code := http.StatusInternalServerError
				if errors.Is(err, userUC.ErrUserNotFound) {
					code = http.StatusNotFound
				}
				respond.SafeError(w, code, err)
				return
			}
			respond.JSON(w, http.StatusOK, toUserDTO(user))

		case http.MethodPut:
			var req updateProfileRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
				return
			}
			user, err := svc.Update(r.Context(), userID, userUC.UpdateInput{
				Username:          req.Username,
				Email:             req.Email,
				Password:          req.Password,
				ProfilePictureURL: req.ProfilePictureURL,
			})
			if err != nil {
				code := http.StatusInternalServerError
				var verr *entity.ValidationError
				switch {
				case errors.As(err, &verr), errors.Is(err, userUC.ErrNothingToUpdate):
					code = http.StatusBadRequest
				case errors.Is(err, userUC.ErrUserNotFound):
					code = http.StatusNotFound
				}
				respond.SafeError(w, code, err)
				return
			}
			respond.JSON(w, http.StatusOK, toUserDTO(user))

		default:
			respond.SafeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		}
	}
}

// Register mounts the auth endpoints on the mux.
func Register(mux *http.ServeMux, svc *userUC.Service) {
	mux.Handle("POST /auth/register", RegisterHandler(svc))
	mux.Handle("POST /auth/login", LoginHandler(svc))
	mux.Handle("/auth/profile", Authz(ProfileHandler(svc)))
}
