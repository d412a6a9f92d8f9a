package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

const selectUser = `
SELECT id, username, email, password_hash, role,
       COALESCE(profile_picture_url, ''), created_at, updated_at
FROM users`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func scanUserRow(s rowScanner) (*entity.User, error) {
	var u entity.User
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.ProfilePictureURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	const query = `
INSERT INTO users (username, email, password_hash, role)
VALUES ($1, $2, $3, $4)
RETURNING id, username, email, password_hash, role,
          COALESCE(profile_picture_url, ''), created_at, updated_at`
	created, err := scanUserRow(repo.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.Role))
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return created, nil
}

func (repo *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := selectUser + `
WHERE email = $1
LIMIT 1`
	u, err := scanUserRow(repo.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := selectUser + `
WHERE id = $1
LIMIT 1`
	u, err := scanUserRow(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) Update(ctx context.Context, id string, set repository.UserUpdate) (*entity.User, error) {
	var (
		assignments []string
		args        []any
	)
	add := func(column string, value any) {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}
	if set.Username != nil {
		add("username", *set.Username)
	}
	if set.Email != nil {
		add("email", *set.Email)
	}
	if set.PasswordHash != nil {
		add("password_hash", *set.PasswordHash)
	}
	if set.ProfilePictureURL != nil {
		add("profile_picture_url", *set.ProfilePictureURL)
	}
	assignments = append(assignments, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
UPDATE users
SET %s
WHERE id = $%d
RETURNING id, username, email, password_hash, role,
          COALESCE(profile_picture_url, ''), created_at, updated_at`,
		strings.Join(assignments, ", "), len(args))

	u, err := scanUserRow(repo.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return u, nil
}
