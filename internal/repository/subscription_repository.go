package repository

import (
	"context"

	"newsdesk/internal/domain/entity"
)

// SubscriptionRepository is the persistence boundary for newsletter
// subscriptions.
type SubscriptionRepository interface {
	// GetByUserID returns the user's subscription row regardless of status,
	// or (nil, nil) when none exists.
	GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error)
	// Create inserts a new active subscription for the user.
	Create(ctx context.Context, userID string) (*entity.Subscription, error)
	// Reactivate flips an existing subscription back to active and resets
	// its creation timestamp, returning the stored row.
	Reactivate(ctx context.Context, userID string) (*entity.Subscription, error)
	// Delete removes the user's subscription. Returns false when none existed.
	Delete(ctx context.Context, userID string) (bool, error)
	// ActiveSubscribers returns every active subscriber joined with the
	// user's email address.
	ActiveSubscribers(ctx context.Context) ([]entity.Subscriber, error)
}
