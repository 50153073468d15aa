// Package logging provides a small abstraction over slog so the rest of the
// module depends on a minimal Logger interface while callers can plug any
// structured logger. A NoOpLogger is used wherever logging is optional.
package logging
