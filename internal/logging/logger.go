// Package logging is the client's logging seam. Packages depend on Logger;
// cmd wiring picks the slog handler, tests pass Discard().
package logging

import "context"

// Logger takes a message plus alternating attribute keys and values:
//
//	logger.Info(ctx, "session resolved", "role", role, "source", "cache")
//
// Level guide: Debug for routine outcomes like redirects, Info for session
// transitions, Warn for degraded paths (cache fallback, failed clears),
// Error for things nobody recovers from.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With binds attributes to every later record.
	With(args ...any) Logger
}
