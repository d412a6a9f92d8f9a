package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type AnalyticsRepo struct {
	db *sql.DB
}

func NewAnalyticsRepo(db *sql.DB) repository.AnalyticsRepository {
	return &AnalyticsRepo{db: db}
}

func (repo *AnalyticsRepo) Summary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	var summary entity.AnalyticsSummary

	const articlesQuery = `SELECT COUNT(*) FROM articles WHERE deleted_at IS NULL`
	if err := repo.db.QueryRowContext(ctx, articlesQuery).Scan(&summary.TotalArticles); err != nil {
		return nil, fmt.Errorf("Summary: articles: %w", err)
	}

	const visitorsQuery = `SELECT COALESCE(SUM(total_visitors), 0) FROM analytics`
	if err := repo.db.QueryRowContext(ctx, visitorsQuery).Scan(&summary.TotalVisitors); err != nil {
		return nil, fmt.Errorf("Summary: visitors: %w", err)
	}

	const viewsQuery = `SELECT COALESCE(SUM(views), 0) FROM articles WHERE deleted_at IS NULL`
	if err := repo.db.QueryRowContext(ctx, viewsQuery).Scan(&summary.TotalViews); err != nil {
		return nil, fmt.Errorf("Summary: views: %w", err)
	}

	const subscribersQuery = `SELECT COUNT(*) FROM subscriptions WHERE status = 'active'`
	if err := repo.db.QueryRowContext(ctx, subscribersQuery).Scan(&summary.SubscribedUsers); err != nil {
		return nil, fmt.Errorf("Summary: subscribers: %w", err)
	}

	return &summary, nil
}

func (repo *AnalyticsRepo) ArticlesByCategory(ctx context.Context) ([]entity.CategoryCount, error) {
	const query = `
SELECT c.name AS category_name, COUNT(a.id) AS count
FROM categories c
LEFT JOIN articles a ON c.id = a.category_id AND a.deleted_at IS NULL
GROUP BY c.name
ORDER BY count DESC`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ArticlesByCategory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]entity.CategoryCount, 0, 16)
	for rows.Next() {
		var cc entity.CategoryCount
		if err := rows.Scan(&cc.CategoryName, &cc.Count); err != nil {
			return nil, fmt.Errorf("ArticlesByCategory: Scan: %w", err)
		}
		result = append(result, cc)
	}
	return result, rows.Err()
}

func (repo *AnalyticsRepo) MostViewed(ctx context.Context, limit int) ([]entity.TopArticle, error) {
	const query = `
SELECT id, title, views
FROM articles
WHERE deleted_at IS NULL
ORDER BY views DESC
LIMIT $1`

	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("MostViewed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]entity.TopArticle, 0, limit)
	for rows.Next() {
		var top entity.TopArticle
		if err := rows.Scan(&top.ID, &top.Title, &top.Views); err != nil {
			return nil, fmt.Errorf("MostViewed: Scan: %w", err)
		}
		result = append(result, top)
	}
	return result, rows.Err()
}

func (repo *AnalyticsRepo) VisitorTrends(ctx context.Context, year, month int) ([]entity.VisitorTrend, error) {
	const query = `
SELECT date_trunc('week', date)::date AS week_start,
       SUM(total_visitors) AS total_visitors
FROM analytics
WHERE EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2
GROUP BY week_start
ORDER BY week_start`

	rows, err := repo.db.QueryContext(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("VisitorTrends: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]entity.VisitorTrend, 0, 5)
	for rows.Next() {
		var trend entity.VisitorTrend
		if err := rows.Scan(&trend.WeekStart, &trend.TotalVisitors); err != nil {
			return nil, fmt.Errorf("VisitorTrends: Scan: %w", err)
		}
		result = append(result, trend)
	}
	return result, rows.Err()
}

// RecordDailyVisitors is an update-then-insert upsert: most days already have
// a tally row, so the UPDATE wins the common case and the INSERT only runs
// when zero rows were touched.
func (repo *AnalyticsRepo) RecordDailyVisitors(ctx context.Context, date time.Time, count int64) error {
	const updateQuery = `
UPDATE analytics
SET total_visitors = total_visitors + $1
WHERE date = $2`
	res, err := repo.db.ExecContext(ctx, updateQuery, count, date)
	if err != nil {
		return fmt.Errorf("RecordDailyVisitors: update: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	const insertQuery = `
INSERT INTO analytics (date, total_visitors)
VALUES ($1, $2)`
	if _, err := repo.db.ExecContext(ctx, insertQuery, date, count); err != nil {
		return fmt.Errorf("RecordDailyVisitors: insert: %w", err)
	}
	return nil
}
