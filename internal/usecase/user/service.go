package user

import (
	"context"
	"fmt"
	"strings"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
)

// RegisterInput represents the input parameters for creating an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UpdateInput represents a sparse profile update. A supplied Password is
// hashed before storage.
type UpdateInput struct {
	Username          *string
	Email             *string
	Password          *string
	ProfilePictureURL *string
}

// Service provides account management use cases. Password hashes never
// leave this package's boundary in responses; handlers serialize users
// through DTOs that omit the hash.
type Service struct {
	Repo repository.UserRepository
}

// Register validates the input, hashes the password and stores the account.
// The role defaults to "user"; uniqueness of username/email is enforced by
// the store and surfaces as a constraint failure.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, &entity.ValidationError{Field: "username", Message: "is required"}
	}
	if err := entity.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, &entity.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", minPasswordLength),
		}
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return nil, &entity.ValidationError{Field: "role", Message: "must be admin or user"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.Repo.Create(ctx, &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and returns the account on success.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns the account by id, or ErrUserNotFound.
func (s *Service) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Update applies a sparse profile update. Supplying no fields at all is a
// validation failure rather than a no-op write.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*entity.User, error) {
	set := repository.UserUpdate{
		Username:          in.Username,
		Email:             in.Email,
		ProfilePictureURL: in.ProfilePictureURL,
	}
	if in.Email != nil {
		if err := entity.ValidateEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, &entity.ValidationError{
				Field:   "password",
				Message: fmt.Sprintf("must be at least %d characters", minPasswordLength),
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed := string(hash)
		set.PasswordHash = &hashed
	}
	if set.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	updated, err := s.Repo.Update(ctx, id, set)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}
