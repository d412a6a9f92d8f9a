// Package analytics exposes the dashboard aggregates.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

// ErrInvalidPeriod is returned when a trend query names an impossible
// year/month combination.
var ErrInvalidPeriod = errors.New("invalid period")

const defaultTopArticles = 5

// Service provides the analytics dashboard use cases.
type Service struct {
	Repo repository.AnalyticsRepository
}

// Summary returns the dashboard headline totals.
func (s *Service) Summary(ctx context.Context) (*entity.AnalyticsSummary, error) {
	out, err := s.Repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}
	metrics.UpdateArticlesTotal(int(out.TotalArticles))
	metrics.UpdateSubscribersTotal(int(out.SubscribedUsers))
	return out, nil
}

// ArticlesByCategory returns active-article counts per category.
func (s *Service) ArticlesByCategory(ctx context.Context) ([]entity.CategoryCount, error) {
	out, err := s.Repo.ArticlesByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("articles by category: %w", err)
	}
	return out, nil
}

// MostViewed returns the top articles by view count. A non-positive limit
// falls back to the default of five.
func (s *Service) MostViewed(ctx context.Context, limit int) ([]entity.TopArticle, error) {
	if limit <= 0 {
		limit = defaultTopArticles
	}
	out, err := s.Repo.MostViewed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("most viewed: %w", err)
	}
	return out, nil
}

// VisitorTrends returns weekly visitor totals for the given month. Zero
// values default to the current month.
func (s *Service) VisitorTrends(ctx context.Context, year, month int) ([]entity.VisitorTrend, error) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year < 2000 || year > now.Year()+1 || month < 1 || month > 12 {
		return nil, ErrInvalidPeriod
	}
	out, err := s.Repo.VisitorTrends(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("visitor trends: %w", err)
	}
	return out, nil
}

// RecordVisit adds one visit to today's tally. Failures are reported but
// callers typically only log them.
func (s *Service) RecordVisit(ctx context.Context) error {
	if err := s.Repo.RecordDailyVisitors(ctx, time.Now(), 1); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}
