package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"simple-cms/internal/common/pagination"
	"simple-cms/internal/config"
	"simple-cms/internal/infra/adapter/persistence"
	"simple-cms/internal/infra/db"
	"simple-cms/internal/observability/logging"
	"simple-cms/internal/observability/metrics"
	"simple-cms/internal/observability/tracing"
	"simple-cms/internal/resilience/circuitbreaker"
	artUC "simple-cms/internal/usecase/article"
	envcfg "simple-cms/pkg/config"

	hhttp "simple-cms/internal/handler/http"
	harticle "simple-cms/internal/handler/http/article"
	hauth "simple-cms/internal/handler/http/auth"
	"simple-cms/internal/handler/http/requestid"

	_ "simple-cms/docs" // swagger docs
)

// @title           Simple CMS API
// @version         1.0
// @description     記事 (Article) の CRUD を提供する REST API

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey SuperToken
// @in header
// @name SuperToken
// @description 共有シークレットをヘッダーにそのまま指定してください。

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	loadDotEnv()
	logger := initLogger()
	version := envcfg.GetEnvString("VERSION", "dev")

	shutdownTracer, err := tracing.InitTracer("simple-cms-api")
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	authn, rules, err := loadAuth(logger)
	if err != nil {
		return err
	}

	database, driver, err := initDatabase(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	srv, limiter, err := setupServer(logger, database, driver, version, authn, rules)
	if err != nil {
		return err
	}
	return runServer(logger, srv, limiter, version)
}

// loadDotEnv reads .env when present. A missing file is not an error.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}
}

// initLogger installs the JSON logger as the slog default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadAuth builds the token authenticator and public routes from the
// security config. A missing secret stops startup.
func loadAuth(logger *slog.Logger) (hauth.Authenticator, []hauth.PublicRule, error) {
	secCfg, err := config.LoadSecurityConfig(os.Getenv("SECURITY_CONFIG_PATH"))
	if err != nil {
		return nil, nil, fmt.Errorf("security config: %w", err)
	}

	secret, err := secCfg.Secret()
	if err != nil {
		return nil, nil, err
	}
	authn, err := hauth.NewTokenAuthenticator(secCfg.HeaderName(), secret)
	if err != nil {
		return nil, nil, fmt.Errorf("authenticator: %w", err)
	}

	rules := hauth.DefaultPublicRules
	if eps := secCfg.PublicEndpoints(); len(eps) > 0 {
		rules = make([]hauth.PublicRule, 0, len(eps))
		for _, ep := range eps {
			rules = append(rules, hauth.PublicRule{Method: ep.Method, Path: ep.Path})
		}
	}
	if err := hauth.ValidateRules(rules); err != nil {
		return nil, nil, err
	}

	logger.Info("authentication configured",
		slog.String("header", authn.Scheme()),
		slog.String("secret_env", secCfg.SecretEnv()),
		slog.Int("public_rules", len(rules)))
	return authn, rules, nil
}

// initDatabase opens the pool and, when ENSURE_DB_CREATED is set, applies
// migrations. A migration failure is logged and startup continues.
func initDatabase(logger *slog.Logger) (*sql.DB, db.Driver, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, driver, err := db.Open(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}

	if envcfg.GetEnvBool("ENSURE_DB_CREATED", true) {
		if err := db.MigrateUp(ctx, database, driver); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
		} else {
			logger.Info("database schema ensured", slog.String("driver", string(driver)))
		}
	}

	if err := metrics.RegisterDBStats(database, "simple-cms"); err != nil {
		logger.Warn("failed to register db stats collector", slog.Any("error", err))
	}
	return database, driver, nil
}

// setupServer wires routes and middleware. The limiter is nil when rate
// limiting is disabled.
func setupServer(
	logger *slog.Logger,
	database *sql.DB,
	driver db.Driver,
	version string,
	authn hauth.Authenticator,
	rules []hauth.PublicRule,
) (*http.Server, *hhttp.RateLimiter, error) {
	repo := circuitbreaker.NewArticleRepository(persistence.NewArticleRepo(driver, database), circuitbreaker.DBConfig())
	artSvc := artUC.Service{Repo: repo}

	mux := http.NewServeMux()
	harticle.Register(mux, artSvc, pagination.LoadFromEnv())

	// 運用エンドポイント（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: version, Breaker: repo.Breaker()})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	rlCfg := hhttp.LoadRateLimitConfigFromEnv()
	if err := rlCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("rate limit config: %w", err)
	}
	var limiter *hhttp.RateLimiter
	var limit hhttp.Middleware
	if rlCfg.Enabled {
		limiter = hhttp.NewRateLimiter(rlCfg.RPS, rlCfg.Burst)
		limit = limiter.Limit
		logger.Info("rate limiting enabled",
			slog.Float64("rps", rlCfg.RPS),
			slog.Int("burst", rlCfg.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	timeout := envcfg.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err := envcfg.ValidateDurationRange(timeout, time.Second, 5*time.Minute); err != nil {
		return nil, nil, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
	}

	// requestid → logging → recover → metrics → input limits → rate limit
	// → timeout → auth → tracing → routes
	handler := hhttp.Chain(mux,
		requestid.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(authn.Scheme()),
		hhttp.LimitRequestBody(int64(envcfg.GetEnvInt("MAX_REQUEST_BODY_BYTES", hhttp.DefaultMaxBodyBytes))),
		limit,
		hhttp.Timeout(timeout),
		hauth.Authz(authn, rules, logger),
		tracing.Middleware,
	)

	srv := &http.Server{
		Addr:              envcfg.GetEnvString("HTTP_ADDR", ":8080"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return srv, limiter, nil
}

// runServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func runServer(logger *slog.Logger, srv *http.Server, limiter *hhttp.RateLimiter, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.BaseContext = func(_ net.Listener) context.Context { return ctx }

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	if limiter != nil {
		interval := envcfg.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", hhttp.DefaultCleanupInterval)
		g.Go(func() error {
			hhttp.StartRateLimitCleanup(gctx, limiter, interval)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
