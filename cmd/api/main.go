package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"newsdesk/internal/common/pagination"
	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/observability/logging"

	analyticsUC "newsdesk/internal/usecase/analytics"
	artUC "newsdesk/internal/usecase/article"
	commentUC "newsdesk/internal/usecase/comment"
	subUC "newsdesk/internal/usecase/subscription"
	userUC "newsdesk/internal/usecase/user"

	hhttp "newsdesk/internal/handler/http"
	hanalytics "newsdesk/internal/handler/http/analytics"
	harticle "newsdesk/internal/handler/http/article"
	hauth "newsdesk/internal/handler/http/auth"
	hcomment "newsdesk/internal/handler/http/comment"
	"newsdesk/internal/handler/http/middleware"
	"newsdesk/internal/handler/http/requestid"
	hsub "newsdesk/internal/handler/http/subscription"
	"newsdesk/internal/observability/tracing"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	validateJWTSecret(logger)
	initTracing()

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupServer(logger, database, version)

	runServer(logger, handler, version)
}

// validateJWTSecret refuses to start with a missing or weak signing secret.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initTracing installs a tracer provider and W3C propagation so request
// logs carry valid trace IDs. Span export is left to a collector sidecar
// when one is configured; spans are sampled but not shipped by default.
func initTracing() {
	otel.SetTracerProvider(sdktrace.NewTracerProvider())
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

// initDatabase opens the connection pool and runs schema bootstrap.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires repositories, services, routes, and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, version string) http.Handler {
	artSvc := &artUC.Service{Repo: pgRepo.NewArticleRepo(database), Logger: logger}
	userSvc := &userUC.Service{Repo: pgRepo.NewUserRepo(database)}
	commentSvc := commentUC.NewService(pgRepo.NewCommentRepo(database))
	subSvc := &subUC.Service{Repo: pgRepo.NewSubscriptionRepo(database)}
	analyticsSvc := &analyticsUC.Service{Repo: pgRepo.NewAnalyticsRepo(database)}
	newsletter := setupNewsletter(logger, database)

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hauth.Register(mux, userSvc)
	harticle.Register(mux, artSvc, paginationCfg, logger)
	hcomment.Register(mux, commentSvc)
	hsub.Register(mux, subSvc, newsletter)
	hanalytics.Register(mux, analyticsSvc)

	return applyMiddleware(logger, mux)
}

// setupNewsletter wires the on-demand digest sender behind the same SMTP
// circuit breaker the worker uses. Without SMTP configuration the trigger
// still works against a no-op mailer.
func setupNewsletter(logger *slog.Logger, database *sql.DB) *subUC.Newsletter {
	var m mailer.Mailer
	if smtpCfg, ok := mailer.LoadSMTPConfig(); ok {
		m = mailer.NewBreakerMailer(mailer.NewSMTPMailer(smtpCfg), mailer.DefaultBreakerConfig())
	} else {
		m = mailer.NewNoOp()
		logger.Warn("SMTP not configured, newsletter trigger uses no-op mailer")
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

// applyMiddleware builds the middleware chain, outermost first:
// CORS -> Request ID -> IP rate limit -> Tracing -> Recovery -> Logging ->
// Body limit -> Timeout -> Metrics -> routes.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsCfg := middleware.LoadCORSConfig()
	logger.Info("CORS configured",
		slog.Any("allowed_origins", corsCfg.AllowedOrigins),
		slog.Any("allowed_methods", corsCfg.AllowedMethods),
		slog.Int("max_age", corsCfg.MaxAge))

	rateLimiter := hhttp.NewRateLimiter(loadRateLimit(), time.Minute)

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(30 * time.Second)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = rateLimiter.Limit(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(corsCfg, logger)(chain)

	return chain
}

// loadRateLimit reads the per-IP requests-per-minute limit from
// RATE_LIMIT_PER_MINUTE, defaulting to 300.
func loadRateLimit() int {
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 300
}

// runServer starts the HTTP server and blocks until SIGINT/SIGTERM, then
// drains in-flight requests.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris guard
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
