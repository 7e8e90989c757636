// Package logging provides leveled debug logging for the CLI and TUI.
//
// The TUI owns the terminal, so logs go to a file (TASKLIST_DEBUG_LOG or the
// debugLog config key) and are discarded when none is configured.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Logger struct {
	mu     sync.Mutex
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errorL *log.Logger
	closer io.Closer
}

const flags = log.Ldate | log.Ltime | log.Lmicroseconds

// New writes all levels to w.
func New(w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		debug:  log.New(w, "[DEBUG] ", flags),
		info:   log.New(w, "[INFO] ", flags),
		warn:   log.New(w, "[WARN] ", flags),
		errorL: log.New(w, "[ERROR] ", flags),
	}
}

func Discard() *Logger { return New(io.Discard) }

// Open appends to the file at path. An empty path returns a discarding logger.
func Open(path string) (*Logger, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Discard(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := New(f)
	l.closer = f
	return l, nil
}

func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.closer.Close()
	l.closer = nil
	return err
}

func (l *Logger) Debugf(format string, v ...any) { l.printf(l.debugL(), format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.printf(l.infoL(), format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.printf(l.warnL(), format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.printf(l.errL(), format, v...) }

func (l *Logger) printf(dst *log.Logger, format string, v ...any) {
	if dst == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	dst.Printf(format, v...)
}

// Nil-safe accessors so a zero or nil *Logger is a no-op.
func (l *Logger) debugL() *log.Logger {
	if l == nil {
		return nil
	}
	return l.debug
}

func (l *Logger) infoL() *log.Logger {
	if l == nil {
		return nil
	}
	return l.info
}

func (l *Logger) warnL() *log.Logger {
	if l == nil {
		return nil
	}
	return l.warn
}

func (l *Logger) errL() *log.Logger {
	if l == nil {
		return nil
	}
	return l.errorL
}
