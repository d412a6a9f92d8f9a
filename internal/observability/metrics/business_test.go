package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordArticleView(t *testing.T) {
	tests := []struct {
		name    string
		success bool
	}{
		{name: "success", success: true},
		{name: "failure", success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordArticleView(tt.success)
			})
		})
	}
}

func TestRecordNewsletterSend(t *testing.T) {
	tests := []struct {
		name    string
		success bool
	}{
		{name: "delivered", success: true},
		{name: "failed", success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordNewsletterSend(tt.success)
			})
		})
	}
}

func TestRecordNewsletterRun(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{name: "fast run", duration: 100 * time.Millisecond},
		{name: "slow run", duration: 30 * time.Second},
		{name: "zero duration", duration: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordNewsletterRun(tt.duration)
			})
		})
	}
}

func TestUpdateGauges(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "zero", count: 0},
		{name: "some", count: 100},
		{name: "many", count: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateArticlesTotal(tt.count)
				UpdateSubscribersTotal(tt.count)
			})
		})
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		duration  time.Duration
	}{
		{name: "select query", operation: "select_articles", duration: 10 * time.Millisecond},
		{name: "insert query", operation: "insert_article", duration: 5 * time.Millisecond},
		{name: "slow query", operation: "complex_join", duration: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordDBQuery(tt.operation, tt.duration)
			})
		})
	}
}

func TestMetricsFunctions_AllCallable(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordArticleView(true)
		RecordCommentRejected()
		RecordNewsletterSend(true)
		RecordNewsletterRun(2 * time.Second)
		UpdateArticlesTotal(100)
		UpdateSubscribersTotal(10)
		RecordDBQuery("test_operation", 10*time.Millisecond)
		UpdateDBConnectionStats(5, 10)
	})
}
