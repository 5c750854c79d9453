// Package applog wires the process-wide debug log. Logging is off unless
// MINILESS_LOG=debug, in which case lines go to a file; the terminal is in
// raw mode while the pager runs and must never receive log output.
package applog

import (
	"io"
	"log"
	"os"
)

const (
	envVar      = "MINILESS_LOG"
	logFileName = "miniless.log"
)

var enabled bool

// Setup configures the standard logger and returns a closer for the log
// file (a no-op closer when logging is disabled).
func Setup() io.Closer {
	if os.Getenv(envVar) != "debug" {
		log.SetOutput(io.Discard)
		return nopCloser{}
	}

	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nopCloser{}
	}
	enabled = true
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file
}

// Debugf logs when debug logging is active.
func Debugf(format string, args ...any) {
	if enabled {
		log.Printf(format, args...)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
