package metrics

import "time"

// RecordArticleView records the result of a view-counter increment.
func RecordArticleView(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	ArticleViewsTotal.WithLabelValues(result).Inc()
}

// RecordCommentRejected records a comment blocked by the word filter.
func RecordCommentRejected() {
	CommentsRejectedTotal.Inc()
}

// RecordNewsletterSend records one newsletter email delivery attempt.
func RecordNewsletterSend(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	NewsletterSentTotal.WithLabelValues(result).Inc()
}

// RecordNewsletterRun records the duration of a complete newsletter run.
func RecordNewsletterRun(duration time.Duration) {
	NewsletterRunDuration.Observe(duration.Seconds())
}

// UpdateArticlesTotal updates the gauge of active articles.
// The gauge is refreshed periodically rather than on every write.
func UpdateArticlesTotal(count int) {
	ArticlesTotal.Set(float64(count))
}

// UpdateSubscribersTotal updates the gauge of active subscribers.
func UpdateSubscribersTotal(count int) {
	SubscribersTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_articles", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
