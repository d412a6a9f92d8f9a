package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type SubscriptionRepo struct {
	db *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) repository.SubscriptionRepository {
	return &SubscriptionRepo{db: db}
}

func scanSubscriptionRow(s rowScanner) (*entity.Subscription, error) {
	var sub entity.Subscription
	if err := s.Scan(&sub.ID, &sub.UserID, &sub.Status, &sub.CreatedAt); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (repo *SubscriptionRepo) GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	const query = `
SELECT id, user_id, status, created_at
FROM subscriptions
WHERE user_id = $1
LIMIT 1`
	sub, err := scanSubscriptionRow(repo.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	return sub, nil
}

func (repo *SubscriptionRepo) Create(ctx context.Context, userID string) (*entity.Subscription, error) {
	const query = `
INSERT INTO subscriptions (user_id)
VALUES ($1)
RETURNING id, user_id, status, created_at`
	sub, err := scanSubscriptionRow(repo.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return sub, nil
}

func (repo *SubscriptionRepo) Reactivate(ctx context.Context, userID string) (*entity.Subscription, error) {
	const query = `
UPDATE subscriptions
SET status = 'active', created_at = NOW()
WHERE user_id = $1
RETURNING id, user_id, status, created_at`
	sub, err := scanSubscriptionRow(repo.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("Reactivate: %w", err)
	}
	return sub, nil
}

func (repo *SubscriptionRepo) Delete(ctx context.Context, userID string) (bool, error) {
	const query = `DELETE FROM subscriptions WHERE user_id = $1`
	res, err := repo.db.ExecContext(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (repo *SubscriptionRepo) ActiveSubscribers(ctx context.Context) ([]entity.Subscriber, error) {
	const query = `
SELECT s.user_id, u.email
FROM subscriptions s
JOIN users u ON s.user_id = u.id
WHERE s.status = 'active'`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ActiveSubscribers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]entity.Subscriber, 0, 64)
	for rows.Next() {
		var sub entity.Subscriber
		if err := rows.Scan(&sub.UserID, &sub.Email); err != nil {
			return nil, fmt.Errorf("ActiveSubscribers: Scan: %w", err)
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}
