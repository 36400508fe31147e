// Package logging provides structured logging for vicare built on Go's
// standard slog package.
//
// Log entries carry a subsystem identifier for categorization, a formatted
// message, and an optional error. InitForCLI installs the handler as the
// slog default, so packages logging through slog directly (such as the
// authentication core) share the same output and level filtering.
//
// Usage:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Config", "Loaded configuration from %s", path)
//	logging.Error("API", err, "Request failed")
//
// Token values are never logged anywhere in this codebase; only metadata
// such as expiry timestamps may appear in log output.
package logging
