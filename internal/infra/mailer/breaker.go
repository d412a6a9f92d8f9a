package mailer

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig holds the circuit breaker settings for SMTP delivery.
type BreakerConfig struct {
	// MaxRequests is the maximum number of sends allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state to clear counts.
	Interval time.Duration

	// Timeout is how long to wait in open state before probing again.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit.
	FailureThreshold float64

	// MinRequests is the minimum number of sends before the ratio applies.
	MinRequests uint32
}

// DefaultBreakerConfig returns settings tuned for SMTP relays: a flaky
// relay trips quickly, and the circuit stays open long enough for the
// relay to recover before the next batch probes it.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// BreakerMailer wraps a Mailer with a circuit breaker so that a dead SMTP
// relay fails newsletter sends fast instead of timing out one by one.
type BreakerMailer struct {
	next    Mailer
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerMailer wraps next with a circuit breaker.
func NewBreakerMailer(next Mailer, cfg BreakerConfig) *BreakerMailer {
	settings := gobreaker.Settings{
		Name:        "smtp-mailer",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &BreakerMailer{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Send delivers through the breaker. When the circuit is open it returns
// gobreaker.ErrOpenState without touching the relay.
func (m *BreakerMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.next.Send(ctx, to, subject, htmlBody)
	})
	return err
}

// State returns the current breaker state, exposed for metrics.
func (m *BreakerMailer) State() gobreaker.State {
	return m.breaker.State()
}
