// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log provides a tiny leveled-logger facade so the codec can
// report recoverable conditions (unknown header slots, a dropped
// thumbnail) without taking a hard dependency on any one
// logging library.
package log

import (
	"fmt"
	"io"
	"log"
)

// Level is a logging severity.
type Level int

// Severities, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal interface the codec depends on.
type Logger interface {
	Log(level Level, msg string)
}

// stdLogger writes to an io.Writer via the standard library logger.
type stdLogger struct {
	log *log.Logger
}

// NewStdLogger returns a Logger that writes to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{log: log.New(w, "", log.LstdFlags)}
}

func (s *stdLogger) Log(level Level, msg string) {
	s.log.Printf("[%s] %s", level, msg)
}

// filter wraps a Logger and drops records below a minimum level.
type filter struct {
	logger Logger
	min    Level
}

// FilterOption configures a filter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a filtered logger will emit.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.min = level }
}

// NewFilter wraps logger with level filtering.
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	f := &filter{logger: logger, min: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, msg string) {
	if level < f.min {
		return
	}
	f.logger.Log(level, msg)
}

// Helper adds printf-style convenience methods on top of a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

// Debugf logs at debug level.
func (h *Helper) Debugf(format string, args ...interface{}) {
	h.logger.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof logs at info level.
func (h *Helper) Infof(format string, args ...interface{}) {
	h.logger.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs at warn level.
func (h *Helper) Warnf(format string, args ...interface{}) {
	h.logger.Log(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs at error level.
func (h *Helper) Errorf(format string, args ...interface{}) {
	h.logger.Log(LevelError, fmt.Sprintf(format, args...))
}
