// Package logging assembles structured slog loggers and formatting helpers used
// across strikearr.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and defines the standard field keys (component, run_id, item_id,
// event_type, decision_*) so every component emits data with the same shape.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
