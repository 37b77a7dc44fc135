package ui

import (
	"fmt"
	"io"
	"os"
)

// Logger keeps diagnostics off stdout, which carries the filtered page.
type Logger struct {
	Debug bool
	out   io.Writer
}

// NewLogger writes to w, or stderr when w is nil.
func NewLogger(w io.Writer, debug bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{Debug: debug, out: w}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		_, _ = fmt.Fprintf(l.out, "[DEBUG] "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, "[INFO] "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, "[ERROR] "+format, args...)
}
