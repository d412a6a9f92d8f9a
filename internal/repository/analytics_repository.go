package repository

import (
	"context"
	"time"

	"newsdesk/internal/domain/entity"
)

// AnalyticsRepository is the persistence boundary for visit analytics.
// Everything here is read/aggregate work except RecordDailyVisitors.
type AnalyticsRepository interface {
	// Summary returns the dashboard totals (articles, visitors, views,
	// subscribers). Soft-deleted articles are excluded from the counts.
	Summary(ctx context.Context) (*entity.AnalyticsSummary, error)
	// ArticlesByCategory returns active-article counts per category,
	// largest first.
	ArticlesByCategory(ctx context.Context) ([]entity.CategoryCount, error)
	// MostViewed returns the top-N active articles by views.
	MostViewed(ctx context.Context, limit int) ([]entity.TopArticle, error)
	// VisitorTrends returns weekly visitor totals for the given month.
	VisitorTrends(ctx context.Context, year, month int) ([]entity.VisitorTrend, error)
	// RecordDailyVisitors adds count to the visitor tally for date,
	// creating the row when the date has no tally yet.
	RecordDailyVisitors(ctx context.Context, date time.Time, count int64) error
}
