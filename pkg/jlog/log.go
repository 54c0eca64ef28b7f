// Package jlog is a thin leveled wrapper over the standard log package,
// used by the orchestrator and CLIs wherever the source calls
// logging.warning/logging.error. No pack top-level repo reaches for a
// structured-logging library at this scale (onedusk-pd's orchestrator
// prefixes plain log.Printf calls with "WARNING:"/"ERROR:" itself), so
// this follows the same convention instead of adopting one.
package jlog

import "log"

// Logger prefixes every line with a level tag, mirroring the
// "WARNING: ..."/"ERROR: ..." convention in onedusk-pd's orchestrator.
type Logger struct {
	prefix string
}

// New returns a Logger whose messages are tagged with prefix (e.g. a
// component name such as "orchestrator").
func New(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

func (l *Logger) tag(level, format string) string {
	if l.prefix == "" {
		return level + ": " + format
	}
	return level + " [" + l.prefix + "]: " + format
}

// Infof logs an informational message, mirroring logging.info.
func (l *Logger) Infof(format string, args ...any) {
	log.Printf(l.tag("INFO", format), args...)
}

// Warnf logs a warning, mirroring logging.warning (used for ParseError and
// MalformedGraph conditions the orchestrator recovers from).
func (l *Logger) Warnf(format string, args ...any) {
	log.Printf(l.tag("WARNING", format), args...)
}

// Errorf logs an error, mirroring logging.error/logging.exception (used
// for Timeout and SerializationError conditions).
func (l *Logger) Errorf(format string, args ...any) {
	log.Printf(l.tag("ERROR", format), args...)
}
