//
// Copyright (c) 2019-2022 Markku Rossi
//
// All rights reserved.
//

// Package logger implements the simplification engine's leveled
// logging facility.
package logger

import (
	"fmt"
	"io"
	"os"
)

// Logger implements named, leveled logging to an io.Writer. Debug
// output is suppressed unless the logger was created with debug
// enabled, so packages can log verbosely on the hot path without
// formatting cost in production builds.
type Logger struct {
	name  string
	out   io.Writer
	debug bool
}

// New creates a Logger named name, writing to out.
func New(name string, out io.Writer) *Logger {
	return &Logger{
		name: name,
		out:  out,
	}
}

// NewStderr creates a Logger named name, writing to os.Stderr.
func NewStderr(name string) *Logger {
	return New(name, os.Stderr)
}

// WithDebug returns l with debug-level output enabled or disabled.
func (l *Logger) WithDebug(enabled bool) *Logger {
	l.debug = enabled
	return l
}

func (l *Logger) log(level, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(l.out, "%s: %s: %s\n", l.name, level, msg)
}

// Debugf logs a debug message. It is a no-op unless debug output was
// enabled with WithDebug.
func (l *Logger) Debugf(format string, a ...interface{}) {
	if !l.debug {
		return
	}
	l.log("debug", format, a...)
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, a ...interface{}) {
	l.log("info", format, a...)
}

// Warningf logs a warning message.
func (l *Logger) Warningf(format string, a ...interface{}) {
	l.log("warning", format, a...)
}

// Errorf logs an error message and returns it as an error value.
func (l *Logger) Errorf(format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	l.log("error", "%s", msg)
	return fmt.Errorf("%s", msg)
}
