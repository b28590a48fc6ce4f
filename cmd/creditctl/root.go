package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/app"
	"github.com/heartmarshall/quizforge-backend/internal/config"
)

const commandTimeout = 30 * time.Second

var errNoDSN = errors.New("DATABASE_DSN environment variable or --dsn is required")

// options are shared by every subcommand.
type options struct {
	dsn      string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "creditctl",
		Short:         "Operate the generation ledger: migrations, admins, quotas and token usage",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.dsn, "dsn", os.Getenv("DATABASE_DSN"), "PostgreSQL DSN (default $DATABASE_DSN)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newMigrateCmd(opts),
		newPromoteCmd(opts),
		newQuotaCmd(opts),
		newUsageCmd(opts),
		newVersionCmd(),
	)

	return root
}

func (o *options) logger() *slog.Logger {
	return app.NewLogger(config.LogConfig{Level: o.logLevel, Format: "text"})
}

// connect opens a small pool; the CLI never runs concurrent statements.
func (o *options) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if o.dsn == "" {
		return nil, errNoDSN
	}
	pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
		DSN:             o.dsn,
		MaxConns:        2,
		MinConns:        0,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		AppName:         "creditctl",
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// ledgerSettings reads the credit and usage sections from the environment
// so the CLI applies the same limits as the server.
func ledgerSettings() (config.CreditConfig, config.UsageConfig, error) {
	var (
		credit config.CreditConfig
		usage  config.UsageConfig
	)
	if err := cleanenv.ReadEnv(&credit); err != nil {
		return credit, usage, fmt.Errorf("read credit config: %w", err)
	}
	if err := cleanenv.ReadEnv(&usage); err != nil {
		return credit, usage, fmt.Errorf("read usage config: %w", err)
	}
	return credit, usage, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}
