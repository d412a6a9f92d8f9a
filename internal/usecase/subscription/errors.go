package subscription

import "errors"

// ErrSubscriptionNotFound is returned when the user has no subscription row.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// ErrInvalidUserID is returned when the user id is empty.
var ErrInvalidUserID = errors.New("invalid user id")
