// Package logging provides structured logging configuration for browsd.
//
// This package wraps log/slog so every component logs through the same
// handler setup. Logs go to stderr by default, keeping stdout clean for the
// stdio JSON-RPC transport.
package logging
