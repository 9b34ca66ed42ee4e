// Package logging assembles the structured slog loggers used across Lectern.
//
// It owns the console/JSON handler setup, level and output plumbing, and a
// handful of attr helpers so components emit log lines with a consistent
// shape. A no-op logger is provided for tests and wiring code that cannot
// fail.
package logging
