package entity

import "time"

// AnalyticsSummary is the site-wide dashboard summary.
type AnalyticsSummary struct {
	TotalArticles   int64
	TotalVisitors   int64
	TotalViews      int64
	SubscribedUsers int64
}

// CategoryCount is the number of active articles in one category.
type CategoryCount struct {
	CategoryName string
	Count        int64
}

// TopArticle is a most-viewed leaderboard entry.
type TopArticle struct {
	ID    string
	Title string
	Views int64
}

// VisitorTrend is an aggregated weekly visitor count.
type VisitorTrend struct {
	WeekStart     time.Time
	TotalVisitors int64
}
