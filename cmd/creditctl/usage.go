package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/quizforge-backend/internal/adapter/postgres/usage"
	"github.com/heartmarshall/quizforge-backend/internal/domain"
	usagesvc "github.com/heartmarshall/quizforge-backend/internal/service/usage"
	"github.com/heartmarshall/quizforge-backend/pkg/ctxutil"
)

const timeLayout = "2006-01-02 15:04"

func newUsageCmd(opts *options) *cobra.Command {
	var (
		from, to string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Report LLM token usage totals and the heaviest users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := summaryInput(from, to, limit)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			_, usageCfg, err := ledgerSettings()
			if err != nil {
				return err
			}

			pool, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := usagesvc.NewService(opts.logger(), usage.New(pool), usageCfg, clockwork.NewRealClock())

			summary, err := svc.Summary(operatorCtx(ctx), input)
			if err != nil {
				return fmt.Errorf("usage: %w", err)
			}

			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "window start, RFC 3339 (default: to minus the configured window)")
	cmd.Flags().StringVar(&to, "to", "", "window end, RFC 3339 (default: now)")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of top users (default: configured)")

	return cmd
}

// operatorCtx marks ctx as an admin caller. Anyone holding the DSN already
// has full access to the data.
func operatorCtx(ctx context.Context) context.Context {
	ctx = ctxutil.WithUserID(ctx, uuid.New())
	return ctxutil.WithUserRole(ctx, domain.UserRoleAdmin.String())
}

func summaryInput(from, to string, limit int) (usagesvc.SummaryInput, error) {
	input := usagesvc.SummaryInput{Limit: limit}
	for _, f := range []struct {
		name  string
		value string
		dst   **time.Time
	}{{"from", from, &input.From}, {"to", to, &input.To}} {
		if f.value == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, f.value)
		if err != nil {
			return usagesvc.SummaryInput{}, fmt.Errorf("invalid --%s: %w", f.name, err)
		}
		*f.dst = &t
	}
	return input, nil
}

func printSummary(w io.Writer, s *domain.UsageSummary) {
	fmt.Fprintf(w, "window: %s .. %s\n", s.From.UTC().Format(timeLayout), s.To.UTC().Format(timeLayout))
	fmt.Fprintf(w, "total:  %d generations, %d prompt + %d completion = %d tokens\n\n",
		s.Totals.Generations, s.Totals.PromptTokens, s.Totals.CompletionTokens, s.Totals.TotalTokens())

	if len(s.TopUsers) == 0 {
		fmt.Fprintln(w, "no usage in window")
		return
	}
	fmt.Fprintf(w, "%-4s %-36s %-32s %8s %12s\n", "#", "USER", "EMAIL", "GENS", "TOKENS")
	for i, u := range s.TopUsers {
		fmt.Fprintf(w, "%-4d %-36s %-32s %8d %12d\n", i+1, u.UserID, u.Email, u.Generations, u.TotalTokens())
	}
}
