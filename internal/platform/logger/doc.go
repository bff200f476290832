// Package logger provides structured logging functionality for the application.
//
// It builds on Go's standard library log/slog package: JSON output for
// production, and a human-readable text handler from charmbracelet/log for
// local development. A request-scoped logger can be carried in a context.
package logger
