package user_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
	userUC "newsdesk/internal/usecase/user"
)

// stubRepo is a very-light in-memory UserRepository with error injection.
type stubRepo struct {
	data   map[string]*entity.User
	nextID int

	lastUpdate *repository.UserUpdate

	err error // forced error for every method
}

func newStub() *stubRepo {
	return &stubRepo{data: map[string]*entity.User{}, nextID: 1}
}

func (s *stubRepo) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u.ID = string(rune('0' + s.nextID))
	s.nextID++
	s.data[u.ID] = u
	return u, nil
}

func (s *stubRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.data {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}

func (s *stubRepo) Update(_ context.Context, id string, set repository.UserUpdate) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastUpdate = &set
	u, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	if set.Username != nil {
		u.Username = *set.Username
	}
	if set.PasswordHash != nil {
		u.PasswordHash = *set.PasswordHash
	}
	return u, nil
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newStub()
	svc := userUC.Service{Repo: repo}

	got, err := svc.Register(context.Background(), userUC.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if got.Role != entity.RoleUser {
		t.Fatalf("role=%q, want %q", got.Role, entity.RoleUser)
	}
	if got.PasswordHash == "correct horse" || got.PasswordHash == "" {
		t.Fatalf("password stored unhashed: %q", got.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("correct horse")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := userUC.Service{Repo: newStub()}

	tests := []struct {
		name string
		in   userUC.RegisterInput
	}{
		{"blank username", userUC.RegisterInput{Username: "  ", Email: "a@example.com", Password: "longenough"}},
		{"bad email", userUC.RegisterInput{Username: "alice", Email: "not-an-email", Password: "longenough"}},
		{"short password", userUC.RegisterInput{Username: "alice", Email: "a@example.com", Password: "short"}},
		{"unknown role", userUC.RegisterInput{Username: "alice", Email: "a@example.com", Password: "longenough", Role: "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			var vErr *entity.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err=%v, want ValidationError", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	repo := newStub()
	svc := userUC.Service{Repo: repo}
	if _, err := svc.Register(context.Background(), userUC.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register err=%v", err)
	}

	got, err := svc.Login(context.Background(), "alice@example.com", "correct horse")
	if err != nil || got.Username != "alice" {
		t.Fatalf("got=%+v err=%v", got, err)
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	repo := newStub()
	svc := userUC.Service{Repo: repo}
	if _, err := svc.Register(context.Background(), userUC.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register err=%v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "whatever1")
	_, wrongErr := svc.Login(context.Background(), "alice@example.com", "wrong password")

	if !errors.Is(unknownErr, userUC.ErrInvalidCredentials) || !errors.Is(wrongErr, userUC.ErrInvalidCredentials) {
		t.Fatalf("unknown=%v wrong=%v, both must be ErrInvalidCredentials", unknownErr, wrongErr)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := userUC.Service{Repo: newStub()}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, userUC.ErrUserNotFound) {
		t.Fatalf("err=%v, want ErrUserNotFound", err)
	}
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	svc := userUC.Service{Repo: newStub()}

	_, err := svc.Update(context.Background(), "u1", userUC.UpdateInput{})
	if !errors.Is(err, userUC.ErrNothingToUpdate) {
		t.Fatalf("err=%v, want ErrNothingToUpdate", err)
	}
}

func TestUpdate_HashesNewPassword(t *testing.T) {
	repo := newStub()
	repo.data["u1"] = &entity.User{ID: "u1", Username: "alice"}
	svc := userUC.Service{Repo: repo}

	pw := "a new password"
	got, err := svc.Update(context.Background(), "u1", userUC.UpdateInput{Password: &pw})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if got.PasswordHash == pw {
		t.Fatal("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte(pw)); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestUpdate_RejectsShortPassword(t *testing.T) {
	svc := userUC.Service{Repo: newStub()}

	pw := "short"
	_, err := svc.Update(context.Background(), "u1", userUC.UpdateInput{Password: &pw})
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := userUC.Service{Repo: newStub()}

	name := "bob"
	_, err := svc.Update(context.Background(), "missing", userUC.UpdateInput{Username: &name})
	if !errors.Is(err, userUC.ErrUserNotFound) {
		t.Fatalf("err=%v, want ErrUserNotFound", err)
	}
}
