// Package services defines shared utilities consumed by the organizer and the
// CLI adapter.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and target directories for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures with errors.Is instead of matching strings.
//
// Use these helpers when wiring new organizer logic so error handling and
// observability stay uniform across the tool.
package services
