// Package subscription manages newsletter subscriptions and delivery.
package subscription

import (
	"context"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// Service provides subscription management use cases.
type Service struct {
	Repo repository.SubscriptionRepository
}

// Subscribe enrolls the user. An existing active subscription is returned
// as is, an inactive one is reactivated, and otherwise a new row is created.
func (s *Service) Subscribe(ctx context.Context, userID string) (*entity.Subscription, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	existing, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	if existing != nil {
		if existing.Status == entity.SubscriptionActive {
			return existing, nil
		}
		reactivated, err := s.Repo.Reactivate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("subscribe: %w", err)
		}
		return reactivated, nil
	}

	created, err := s.Repo.Create(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return created, nil
}

// Unsubscribe removes the user's subscription row entirely.
func (s *Service) Unsubscribe(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}
	ok, err := s.Repo.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if !ok {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Status reports whether the user currently has an active subscription.
func (s *Service) Status(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, ErrInvalidUserID
	}
	sub, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("subscription status: %w", err)
	}
	return sub != nil && sub.Status == entity.SubscriptionActive, nil
}
