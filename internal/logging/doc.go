// Package logging assembles structured slog loggers and formatting helpers used
// across titlesort.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so organizer code can
// automatically tag log lines with the run identifier and target directory.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
