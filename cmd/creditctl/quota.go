package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/generation"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/subscription"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	"github.com/heartmarshall/quizforge-backend/internal/service/credit"
)

func newQuotaCmd(opts *options) *cobra.Command {
	var (
		email  string
		userID string
	)

	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show an account's tier and remaining generation quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			creditCfg, _, err := ledgerSettings()
			if err != nil {
				return err
			}

			pool, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			accounts := account.New(pool)
			id, err := resolveAccount(ctx, accounts, userID, email)
			if err != nil {
				return err
			}

			ledger := credit.NewService(
				opts.logger(),
				accounts,
				subscription.New(pool),
				generation.New(pool),
				audit.New(pool),
				postgres.NewTxManager(pool),
				creditCfg.Policy(),
				clockwork.NewRealClock(),
			)

			status, err := ledger.QuotaForUser(ctx, id)
			if err != nil {
				return fmt.Errorf("quota: %w", err)
			}

			printQuota(cmd.OutOrStdout(), id, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&userID, "user", "", "account id")
	cmd.MarkFlagsOneRequired("email", "user")
	cmd.MarkFlagsMutuallyExclusive("email", "user")

	return cmd
}

func resolveAccount(ctx context.Context, accounts *account.Repo, userID, email string) (uuid.UUID, error) {
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid --user: %w", err)
		}
		return id, nil
	}
	acc, err := accounts.GetByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup %q: %w", email, err)
	}
	return acc.ID, nil
}

func printQuota(w io.Writer, id uuid.UUID, s domain.QuotaStatus) {
	fmt.Fprintf(w, "account:   %s\n", id)
	fmt.Fprintf(w, "tier:      %s\n", s.Tier)
	if s.Unlimited {
		fmt.Fprintf(w, "limit:     %d (balance not tracked)\n", s.Limit)
		return
	}
	fmt.Fprintf(w, "limit:     %d\n", s.Limit)
	fmt.Fprintf(w, "used:      %d\n", s.Used)
	fmt.Fprintf(w, "remaining: %d\n", s.Remaining)
	if s.Period != nil {
		fmt.Fprintf(w, "period:    %s .. %s\n", s.Period.Start.UTC().Format(timeLayout), s.Period.End.UTC().Format(timeLayout))
	}
}
