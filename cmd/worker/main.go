package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/mailer"
	workerPkg "newsdesk/internal/infra/worker"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/metrics"
	subUC "newsdesk/internal/usecase/subscription"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := workerPkg.LoadConfigFromEnv(logger)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("digest_days", cfg.DigestDays),
		slog.Duration("send_timeout", cfg.SendTimeout),
		slog.Int("health_port", cfg.HealthPort))

	newsletter := setupNewsletter(logger, database)

	startMetricsServer(ctx, logger)

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.Int("port", cfg.HealthPort))

	runCron(ctx, logger, newsletter, cfg, healthServer)
}

// initDatabase opens the pool and waits for the API's schema bootstrap,
// since only cmd/api runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()

	const probe = "SELECT 1 FROM articles LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return database
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
	return nil
}

// setupNewsletter wires the digest pipeline: repositories, the SMTP mailer
// behind a circuit breaker, and the renderer. Without SMTP configuration
// the worker runs with a no-op mailer so delivery can be tested end to end
// in development.
func setupNewsletter(logger *slog.Logger, database *sql.DB) *subUC.Newsletter {
	var m mailer.Mailer
	if smtpCfg, ok := mailer.LoadSMTPConfig(); ok {
		m = mailer.NewBreakerMailer(mailer.NewSMTPMailer(smtpCfg), mailer.DefaultBreakerConfig())
		logger.Info("SMTP mailer initialized", slog.String("host", smtpCfg.Host))
	} else {
		m = mailer.NewNoOp()
		logger.Warn("SMTP not configured, using no-op mailer")
	}

	baseURL := os.Getenv("NEWSLETTER_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	return subUC.NewNewsletter(
		pgRepo.NewSubscriptionRepo(database),
		pgRepo.NewArticleRepo(database),
		m,
		logger,
		baseURL,
	)
}

// startMetricsServer exposes /metrics for Prometheus scraping on
// METRICS_PORT (default 9090) and shuts down with ctx.
func startMetricsServer(ctx context.Context, logger *slog.Logger) {
	port := os.Getenv("METRICS_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server started", slog.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// runCron schedules the newsletter job and blocks until SIGINT/SIGTERM.
func runCron(ctx context.Context, logger *slog.Logger, newsletter *subUC.Newsletter, cfg workerPkg.Config, health *workerPkg.HealthServer) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("failed to load timezone", slog.Any("error", err))
		os.Exit(1)
	}

	c := cron.New(cron.WithLocation(location))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runNewsletterJob(ctx, logger, newsletter, cfg)
	})
	if err != nil {
		logger.Error("failed to schedule newsletter job", slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()
	health.SetReady(true)
	logger.Info("newsletter worker started", slog.String("schedule", cfg.CronSchedule))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	// Let an in-flight run finish before exiting.
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// runNewsletterJob executes one digest delivery with a bounded deadline and
// records job metrics either way.
func runNewsletterJob(ctx context.Context, logger *slog.Logger, newsletter *subUC.Newsletter, cfg workerPkg.Config) {
	jobCtx, cancel := context.WithTimeout(ctx, cfg.SendTimeout)
	defer cancel()

	start := time.Now()
	sent, err := newsletter.Send(jobCtx, cfg.DigestDays, "")
	duration := time.Since(start)

	workerPkg.RecordJobRun(err == nil, duration)
	workerPkg.RecordEmailsSent(sent)
	metrics.RecordNewsletterRun(duration)

	if err != nil {
		logger.Error("newsletter job failed",
			slog.Int("sent", sent),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return
	}
	logger.Info("newsletter job completed",
		slog.Int("sent", sent),
		slog.Duration("duration", duration))
}
