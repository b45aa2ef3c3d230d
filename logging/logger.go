// Package logging holds the *slog.Logger used by schedpdf library code.
//
// Nothing is logged unless a logger is installed with SetLogger. The CLI
// installs its charmbracelet logger here so that font fallbacks and page
// progress show up alongside command output.
package logging

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger installs the package-level logger. Passing nil restores the
// discard logger. SetLogger is safe for concurrent use.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		logger.Store(newDiscardLogger())
		return
	}
	logger.Store(sl)
}

// Logger returns the package-level logger, or a discard logger if none has
// been installed. Logger is safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = newDiscardLogger()
		logger.Store(l)
	}
	return l
}
