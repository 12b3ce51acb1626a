/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable logger that can be silenced for MCP integrations.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	output  io.Writer = os.Stderr
	verbose bool
	logger  = newLogger(output, verbose)
)

func newLogger(w io.Writer, debug bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix: "rsclocate",
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = newLogger(output, verbose)
}

// SetVerbose enables or disables debug lines. The tsconfig chain trace is
// written at debug level.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	logger = newLogger(output, verbose)
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Debug logs a verbose line. Hidden unless SetVerbose(true).
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}
