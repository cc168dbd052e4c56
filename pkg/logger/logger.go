// Package logger provides a minimal component-scoped logger used throughout
// gh-bundles. Every package declares one package-level instance, e.g.
//
//	var log = logger.New("registry:manager")
//
// and logs through it rather than the bare standard library logger, so every
// line carries its originating component without repeating it at each call
// site.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose toggles whether Debugf output is emitted. Non-debug output is
// always emitted; verbosity only gates the extra diagnostic layer.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetOutput redirects all loggers to w. Primarily for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Logger is a component-scoped logger.
type Logger struct {
	component string
}

// New creates a Logger scoped to component, conventionally
// "<package>:<file>" (e.g. "registry:manager").
func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) std() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.New(output, "["+l.component+"] ", log.LstdFlags)
}

// Print logs a single message.
func (l *Logger) Print(v ...any) {
	l.std().Print(v...)
}

// Printf logs a formatted message.
func (l *Logger) Printf(format string, v ...any) {
	l.std().Printf(format, v...)
}

// Debugf logs a formatted message only when verbose logging is enabled.
func (l *Logger) Debugf(format string, v ...any) {
	mu.RLock()
	v2 := verbose
	mu.RUnlock()
	if !v2 {
		return
	}
	l.std().Printf("DEBUG "+format, v...)
}

// Warnf logs a formatted warning.
func (l *Logger) Warnf(format string, v ...any) {
	l.std().Printf("WARN "+format, v...)
}

// Errorf logs a formatted error.
func (l *Logger) Errorf(format string, v ...any) {
	l.std().Printf("ERROR "+format, v...)
}

// String renders a value with fmt.Sprint, useful for lazy-looking log args
// in call sites that mirror the teacher's %v-heavy style.
func String(v any) string {
	return fmt.Sprint(v)
}
