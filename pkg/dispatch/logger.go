package dispatch

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	packageLogger atomic.Pointer[zap.Logger]
	nopLogger     = zap.NewNop()
)

// Logger returns the package logger used by dispatchers created without one.
// It is a no-op logger unless SetLogger was called.
func Logger() *zap.Logger {
	if l := packageLogger.Load(); l != nil {
		return l
	}
	return nopLogger
}

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *zap.Logger) {
	if l == nil {
		return
	}
	packageLogger.Store(l)
}
