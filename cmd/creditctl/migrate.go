package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/quizforge-backend/migrations"
)

func newMigrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), opts, func(ctx context.Context, p *goose.Provider) error {
					results, err := p.Up(ctx)
					if err != nil {
						return fmt.Errorf("migrate up: %w", err)
					}
					if len(results) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
					}
					for _, r := range results {
						fmt.Fprintf(cmd.OutOrStdout(), "applied %05d %s (%s)\n", r.Source.Version, r.Source.Path, r.Duration)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), opts, func(ctx context.Context, p *goose.Provider) error {
					r, err := p.Down(ctx)
					if err != nil {
						return fmt.Errorf("migrate down: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "rolled back %05d %s\n", r.Source.Version, r.Source.Path)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), opts, func(ctx context.Context, p *goose.Provider) error {
					statuses, err := p.Status(ctx)
					if err != nil {
						return fmt.Errorf("migrate status: %w", err)
					}
					for _, s := range statuses {
						applied := "-"
						if !s.AppliedAt.IsZero() {
							applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
						}
						fmt.Fprintf(cmd.OutOrStdout(), "%05d %-8s %-20s %s\n", s.Source.Version, s.State, applied, s.Source.Path)
					}
					return nil
				})
			},
		},
	)

	return cmd
}

// withProvider opens a database/sql handle for goose and runs fn with a
// provider over the embedded migrations.
func withProvider(ctx context.Context, opts *options, fn func(ctx context.Context, p *goose.Provider) error) error {
	if opts.dsn == "" {
		return errNoDSN
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	db, err := sql.Open("pgx", opts.dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	return fn(ctx, provider)
}
