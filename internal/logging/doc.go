// Package logging assembles structured slog loggers for the transcription
// pipeline.
//
// It owns the console and JSON handlers, resolves the "auto" format from the
// terminal state of stderr, and exposes context-aware helpers so pipeline code
// tags every line with the run ID and current stage. Diagnostics never reach
// stdout: that stream carries only the transcript document, so a "stdout"
// sink is rejected at construction time.
//
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
