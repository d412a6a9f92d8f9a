// Package worker holds the runtime scaffolding for the newsletter worker:
// configuration, health probes, and job metrics.
package worker

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Config controls the newsletter worker: the delivery schedule, how far
// back the digest looks for articles, and operational limits.
type Config struct {
	// CronSchedule is a standard 5-field cron expression for digest delivery.
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	Timezone string

	// DigestDays is how many days of published articles each digest covers.
	DigestDays int

	// SendTimeout bounds a single newsletter run.
	SendTimeout time.Duration

	// HealthPort is the port for the liveness/readiness HTTP server.
	HealthPort int
}

// DefaultConfig returns the production defaults: a weekly digest on Monday
// morning covering the previous seven days.
func DefaultConfig() Config {
	return Config{
		CronSchedule: "0 8 * * 1", // Mondays at 08:00
		Timezone:     "UTC",
		DigestDays:   7,
		SendTimeout:  10 * time.Minute,
		HealthPort:   9091,
	}
}

// LoadConfigFromEnv reads configuration from the environment, falling back
// to defaults field by field. Invalid values are logged and replaced with
// the default rather than failing the worker; a scheduling typo should not
// take newsletter delivery down entirely.
func LoadConfigFromEnv(logger *slog.Logger) Config {
	cfg := DefaultConfig()

	if v := os.Getenv("NEWSLETTER_CRON_SCHEDULE"); v != "" {
		if err := validateCronSchedule(v); err != nil {
			logger.Warn("invalid NEWSLETTER_CRON_SCHEDULE, using default",
				slog.String("value", v),
				slog.String("default", cfg.CronSchedule),
				slog.Any("error", err))
		} else {
			cfg.CronSchedule = v
		}
	}

	if v := os.Getenv("NEWSLETTER_TIMEZONE"); v != "" {
		if _, err := time.LoadLocation(v); err != nil {
			logger.Warn("invalid NEWSLETTER_TIMEZONE, using default",
				slog.String("value", v),
				slog.String("default", cfg.Timezone))
		} else {
			cfg.Timezone = v
		}
	}

	if v := os.Getenv("NEWSLETTER_DIGEST_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 90 {
			cfg.DigestDays = n
		} else {
			logger.Warn("invalid NEWSLETTER_DIGEST_DAYS, using default",
				slog.String("value", v),
				slog.Int("default", cfg.DigestDays))
		}
	}

	if v := os.Getenv("NEWSLETTER_SEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SendTimeout = d
		} else {
			logger.Warn("invalid NEWSLETTER_SEND_TIMEOUT, using default",
				slog.String("value", v),
				slog.Duration("default", cfg.SendTimeout))
		}
	}

	if v := os.Getenv("WORKER_HEALTH_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1024 && n <= 65535 {
			cfg.HealthPort = n
		} else {
			logger.Warn("invalid WORKER_HEALTH_PORT, using default",
				slog.String("value", v),
				slog.Int("default", cfg.HealthPort))
		}
	}

	return cfg
}

// Validate checks every field and aggregates all failures.
func (c *Config) Validate() error {
	var errs []error

	if err := validateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if c.DigestDays < 1 || c.DigestDays > 90 {
		errs = append(errs, fmt.Errorf("digest days: must be between 1 and 90, got %d", c.DigestDays))
	}
	if c.SendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("send timeout: must be positive, got %s", c.SendTimeout))
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		errs = append(errs, fmt.Errorf("health port: must be between 1024 and 65535, got %d", c.HealthPort))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

func validateCronSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}
	return nil
}
