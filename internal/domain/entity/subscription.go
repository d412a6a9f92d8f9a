package entity

import "time"

// Subscription statuses.
const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
)

// Subscription represents a newsletter subscription for one user.
// Unsubscribing removes the row; re-subscribing an inactive row reactivates it.
type Subscription struct {
	ID        string
	UserID    string
	Status    string
	CreatedAt time.Time
}

// Subscriber pairs a subscribed user with the email address the newsletter
// is delivered to.
type Subscriber struct {
	UserID string
	Email  string
}
