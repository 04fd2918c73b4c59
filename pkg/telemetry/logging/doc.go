// Package logging provides structured logging for Saturn built on log/slog.
//
// Loggers are created from the telemetry.logging configuration section and
// emit either JSON or plain text. All Saturn packages accept a *slog.Logger
// so callers control the sink; this package only handles construction.
package logging
