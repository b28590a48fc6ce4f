package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/generation"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/subscription"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/usage"
	"github.com/heartmarshall/quizforge-backend/internal/auth"
	"github.com/heartmarshall/quizforge-backend/internal/config"
	accountsvc "github.com/heartmarshall/quizforge-backend/internal/service/account"
	"github.com/heartmarshall/quizforge-backend/internal/service/credit"
	usagesvc "github.com/heartmarshall/quizforge-backend/internal/service/usage"
	"github.com/heartmarshall/quizforge-backend/internal/transport/rest"
)

const (
	readHeaderTimeout = 5 * time.Second

	// Serialization failures and deadlocks are replayed this many times.
	txRetries      = 2
	txRetryBackoff = 20 * time.Millisecond
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL, wires repositories, services and handlers, and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Duration("statement_timeout", cfg.Database.StatementTimeout),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()
	txm := postgres.NewTxManager(pool, postgres.WithRetries(txRetries, txRetryBackoff))

	accounts := account.New(pool)
	subscriptions := subscription.New(pool)
	generations := generation.New(pool)
	usageRepo := usage.New(pool)
	auditRepo := audit.New(pool)

	ledger := credit.NewService(logger, accounts, subscriptions, generations, auditRepo, txm, cfg.Credit.Policy(), clock)
	usageService := usagesvc.NewService(logger, usageRepo, cfg.Usage, clock)
	accountService := accountsvc.NewService(logger, accounts, auditRepo, txm)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, clock)

	router := newRouter(handlers{
		health:     rest.NewHealthHandler(pool, BuildVersion(), clock),
		quota:      rest.NewQuotaHandler(ledger, usageService, logger),
		generation: rest.NewGenerationHandler(ledger, generations, usageService, clock, logger),
		admin:      rest.NewAdminHandler(usageService, ledger, subscriptions, auditRepo, accountService, logger),
	}, jwtManager, cfg.CORS, logger)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is done, then drains in-flight requests for at
// most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app: http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app: shutdown: %w", err)
		}
		logger.Info("http server stopped")
		return nil
	})

	return g.Wait()
}
