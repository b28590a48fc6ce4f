package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	accountsvc "github.com/heartmarshall/quizforge-backend/internal/service/account"
)

func newPromoteCmd(opts *options) *cobra.Command {
	var (
		email  string
		demote bool
	)

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Grant the admin role to an account (bootstraps the first admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			pool, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := accountsvc.NewService(opts.logger(), account.New(pool), audit.New(pool), postgres.NewTxManager(pool))

			role := domain.UserRoleAdmin
			if demote {
				role = domain.UserRoleUser
			}

			change, err := svc.SetRoleByEmail(operatorCtx(ctx), email, role)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no account with email %q", email)
			}
			if err != nil {
				return fmt.Errorf("promote: %w", err)
			}

			if !change.Changed() {
				fmt.Fprintf(cmd.OutOrStdout(), "Account %q is already %s.\n", email, role)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %q role changed: %s -> %s.\n", email, change.OldRole, change.Account.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the account to promote")
	cmd.Flags().BoolVar(&demote, "demote", false, "revoke admin instead of granting it")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
