// Package logging assembles the slog loggers used by the miso CLI.
//
// It owns the console and JSON handlers, maps the [logging] settings section
// onto them, and provides a no-op logger for tests. Logs always go to the
// error stream so the user-facing stream stays reserved for summaries and
// annotation dumps.
package logging
