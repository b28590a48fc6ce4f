package app

import "fmt"

// Version, Commit, and BuildTime are set via ldflags at build time for both
// cmd/server and cmd/creditctl.
// Example: go build -ldflags "-X github.com/heartmarshall/quizforge-backend/internal/app.Version=1.0.0" ./cmd/server
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs, the
// health endpoint and `creditctl version`.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
