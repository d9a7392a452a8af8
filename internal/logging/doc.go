// Package logging assembles the structured slog loggers used by the encoder
// wrapper and the CLI.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// and exposes context-aware helpers so conversion code automatically tags log
// lines with the correlation ID and source image of the request in flight. A
// no-op logger is provided for tests and for library callers that do not
// supply one.
package logging
