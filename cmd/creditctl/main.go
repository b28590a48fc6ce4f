// Command creditctl is the operator CLI for the generation ledger.
//
// Usage:
//
//	creditctl migrate up|down|status
//	creditctl promote --email=user@example.com
//	creditctl quota --email=user@example.com
//	creditctl usage --from=2026-05-01T00:00:00Z --limit=10
//
// Requires DATABASE_DSN environment variable (or --dsn) to be set.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
