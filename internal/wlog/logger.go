// Package wlog provides the leveled logger used across the trainer and
// CLI. It wraps logrus the way leo9827-own-x-go/log/impl.go wraps it,
// trimmed to the handful of levels training actually logs at.
package wlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is a thin wrapper around a *logrus.Logger giving the trainer
// a small, printf-style surface instead of logrus's structured one.
type Logger struct {
	mu sync.Mutex
	l  *logrus.Logger
}

var (
	defaultLogger *Logger
	defaultOnce   sync.Once
)

// Default returns the process-wide logger, creating it on first use.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// New creates a logger at Info level writing to stderr.
func New() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{l: l}
}

// SetLevel parses one of "trace", "debug", "info", "warn", "error" and
// sets the logger's verbosity; unknown levels fall back to info.
func (lg *Logger) SetLevel(level string) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	lg.l.SetLevel(parsed)
}

// SetOutput redirects log output, used by tests to silence the logger.
func (lg *Logger) SetOutput(w io.Writer) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.l.SetOutput(w)
}

// decorate attaches the caller's file:line and function name to the
// log entry, the way leo9827-own-x-go/log/impl.go's decorate does;
// skip counts frames up from decorate itself, so callers one level
// down (Tracef, Debugf, ...) pass 2.
func (lg *Logger) decorate(skip int) *logrus.Entry {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return logrus.NewEntry(lg.l)
	}
	fName := runtime.FuncForPC(pc).Name()
	path := strings.Split(file, string(os.PathSeparator))
	var position string
	if len(path) > 3 {
		position = fmt.Sprintf("%s:%d", strings.Join(path[len(path)-3:], string(os.PathSeparator)), line)
	} else {
		position = fmt.Sprintf("%s:%d", strings.Join(path, string(os.PathSeparator)), line)
	}
	return lg.l.WithField("position", position).WithField("func", fName)
}

func (lg *Logger) Tracef(format string, args ...interface{}) { lg.decorate(2).Tracef(format, args...) }
func (lg *Logger) Debugf(format string, args ...interface{}) { lg.decorate(2).Debugf(format, args...) }
func (lg *Logger) Infof(format string, args ...interface{})  { lg.decorate(2).Infof(format, args...) }
func (lg *Logger) Warnf(format string, args ...interface{})  { lg.decorate(2).Warnf(format, args...) }
func (lg *Logger) Errorf(format string, args ...interface{}) { lg.decorate(2).Errorf(format, args...) }

// Fatalf logs at fatal level and exits the process; training's only use
// of this is unrecoverable I/O failure, matching the teacher's
// "I/O errors during training are fatal" policy.
func (lg *Logger) Fatalf(format string, args ...interface{}) { lg.decorate(2).Fatalf(format, args...) }
