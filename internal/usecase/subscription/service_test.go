package subscription_test

import (
	"context"
	"errors"
	"testing"

	"newsdesk/internal/domain/entity"
	subUC "newsdesk/internal/usecase/subscription"
)

// stubRepo is a very-light in-memory SubscriptionRepository with error
// injection.
type stubRepo struct {
	subs        map[string]*entity.Subscription
	subscribers []entity.Subscriber

	createCalls     int
	reactivateCalls int

	err error // forced error for every method
}

func newStub() *stubRepo {
	return &stubRepo{subs: map[string]*entity.Subscription{}}
}

func (s *stubRepo) GetByUserID(_ context.Context, userID string) (*entity.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subs[userID], nil
}

func (s *stubRepo) Create(_ context.Context, userID string) (*entity.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.createCalls++
	sub := &entity.Subscription{ID: "s-" + userID, UserID: userID, Status: entity.SubscriptionActive}
	s.subs[userID] = sub
	return sub, nil
}

func (s *stubRepo) Reactivate(_ context.Context, userID string) (*entity.Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.reactivateCalls++
	sub := s.subs[userID]
	sub.Status = entity.SubscriptionActive
	return sub, nil
}

func (s *stubRepo) Delete(_ context.Context, userID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.subs[userID]; ok {
		delete(s.subs, userID)
		return true, nil
	}
	return false, nil
}

func (s *stubRepo) ActiveSubscribers(_ context.Context) ([]entity.Subscriber, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subscribers, nil
}

func TestSubscribe_CreatesNewSubscription(t *testing.T) {
	repo := newStub()
	svc := subUC.Service{Repo: repo}

	sub, err := svc.Subscribe(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Subscribe err=%v", err)
	}
	if sub.Status != entity.SubscriptionActive || repo.createCalls != 1 {
		t.Fatalf("sub=%+v createCalls=%d", sub, repo.createCalls)
	}
}

func TestSubscribe_ActiveIsIdempotent(t *testing.T) {
	repo := newStub()
	repo.subs["u1"] = &entity.Subscription{ID: "s1", UserID: "u1", Status: entity.SubscriptionActive}
	svc := subUC.Service{Repo: repo}

	sub, err := svc.Subscribe(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Subscribe err=%v", err)
	}
	if sub.ID != "s1" || repo.createCalls != 0 || repo.reactivateCalls != 0 {
		t.Fatalf("sub=%+v create=%d reactivate=%d", sub, repo.createCalls, repo.reactivateCalls)
	}
}

func TestSubscribe_ReactivatesInactiveRow(t *testing.T) {
	repo := newStub()
	repo.subs["u1"] = &entity.Subscription{ID: "s1", UserID: "u1", Status: entity.SubscriptionInactive}
	svc := subUC.Service{Repo: repo}

	sub, err := svc.Subscribe(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Subscribe err=%v", err)
	}
	if sub.Status != entity.SubscriptionActive || repo.reactivateCalls != 1 || repo.createCalls != 0 {
		t.Fatalf("sub=%+v create=%d reactivate=%d", sub, repo.createCalls, repo.reactivateCalls)
	}
}

func TestSubscribe_EmptyUserID(t *testing.T) {
	svc := subUC.Service{Repo: newStub()}

	if _, err := svc.Subscribe(context.Background(), ""); !errors.Is(err, subUC.ErrInvalidUserID) {
		t.Fatalf("err=%v, want ErrInvalidUserID", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	repo := newStub()
	repo.subs["u1"] = &entity.Subscription{ID: "s1", UserID: "u1", Status: entity.SubscriptionActive}
	svc := subUC.Service{Repo: repo}

	if err := svc.Unsubscribe(context.Background(), "u1"); err != nil {
		t.Fatalf("Unsubscribe err=%v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "u1"); !errors.Is(err, subUC.ErrSubscriptionNotFound) {
		t.Fatalf("second unsubscribe err=%v, want ErrSubscriptionNotFound", err)
	}
}

func TestStatus(t *testing.T) {
	repo := newStub()
	repo.subs["active"] = &entity.Subscription{UserID: "active", Status: entity.SubscriptionActive}
	repo.subs["inactive"] = &entity.Subscription{UserID: "inactive", Status: entity.SubscriptionInactive}
	svc := subUC.Service{Repo: repo}

	tests := []struct {
		userID string
		want   bool
	}{
		{"active", true},
		{"inactive", false},
		{"unknown", false},
	}
	for _, tt := range tests {
		got, err := svc.Status(context.Background(), tt.userID)
		if err != nil || got != tt.want {
			t.Fatalf("Status(%q)=%v err=%v, want %v", tt.userID, got, err, tt.want)
		}
	}
}
