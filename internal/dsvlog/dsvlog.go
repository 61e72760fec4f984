// Package dsvlog is the viewer's logging sink: a thin wrapper over
// github.com/grailbio/base/log that redirects output to dsv_debug.log in
// the current working directory.
package dsvlog

import (
	"fmt"
	golog "log"
	"os"

	"github.com/grailbio/base/log"
)

const logFileName = "dsv_debug.log"

// Init opens (or creates, appending) dsv_debug.log in the current directory
// and redirects both the log package's output and the process's stderr to
// it. It returns a close func the caller should defer.
func Init() (func(), error) {
	f, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("dsvlog: open %s: %w", logFileName, err)
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	origStderr := os.Stderr
	golog.SetOutput(f)
	os.Stderr = f
	return func() {
		golog.SetOutput(origStderr)
		os.Stderr = origStderr
		_ = f.Close()
	}, nil
}

// Debugf logs a debug-level message.
func Debugf(format string, args ...interface{}) {
	log.Debug.Printf(format, args...)
}

// Infof logs an info-level message.
func Infof(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Warnf logs a recoverable-condition warning (cache exhaustion, clipboard
// unavailable, config parse warning, search not found, ...).
func Warnf(format string, args ...interface{}) {
	log.Printf("WARN: "+format, args...)
}

// Invariant logs a programmer-error invariant violation (nil handle,
// out-of-bounds cursor). The viewer does not attempt to self-heal from
// these; it logs and continues as gracefully as it can.
func Invariant(format string, args ...interface{}) {
	log.Printf("INVARIANT VIOLATION: "+format, args...)
}
