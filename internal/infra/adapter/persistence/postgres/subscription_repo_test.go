package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"newsdesk/internal/domain/entity"
	pg "newsdesk/internal/infra/adapter/persistence/postgres"
)

var subscriptionColumns = []string{"id", "user_id", "status", "created_at"}

func TestSubscriptionRepo_GetByUserID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	const userID = "a1b2c3d4-0000-4000-8000-000000000001"

	mock.ExpectQuery("FROM subscriptions").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(subscriptionColumns).
			AddRow("s0000001-0000-4000-8000-000000000001", userID, entity.SubscriptionActive, now))

	repo := pg.NewSubscriptionRepo(db)
	got, err := repo.GetByUserID(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetByUserID err=%v", err)
	}
	if got == nil || got.Status != entity.SubscriptionActive {
		t.Fatalf("got %+v", got)
	}
}

func TestSubscriptionRepo_GetByUserID_None(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM subscriptions").
		WillReturnRows(sqlmock.NewRows(subscriptionColumns))

	repo := pg.NewSubscriptionRepo(db)
	got, err := repo.GetByUserID(context.Background(), "a1b2c3d4-0000-4000-8000-000000000001")
	if err != nil {
		t.Fatalf("GetByUserID err=%v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestSubscriptionRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	const userID = "a1b2c3d4-0000-4000-8000-000000000001"
	mock.ExpectExec("DELETE FROM subscriptions").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewSubscriptionRepo(db)
	ok, err := repo.Delete(context.Background(), userID)
	if err != nil || !ok {
		t.Fatalf("Delete ok=%v err=%v", ok, err)
	}
}

func TestSubscriptionRepo_ActiveSubscribers(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("WHERE s.status = 'active'").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email"}).
			AddRow("a1b2c3d4-0000-4000-8000-000000000001", "jsmith@example.com").
			AddRow("a1b2c3d4-0000-4000-8000-000000000002", "mgarcia@example.com"))

	repo := pg.NewSubscriptionRepo(db)
	got, err := repo.ActiveSubscribers(context.Background())
	if err != nil {
		t.Fatalf("ActiveSubscribers err=%v", err)
	}
	if len(got) != 2 || got[0].Email != "jsmith@example.com" {
		t.Fatalf("got %+v", got)
	}
}
