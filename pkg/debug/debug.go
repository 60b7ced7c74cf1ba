// Package debug provides conditional debug logging for lcv.
//
// Debug logging is enabled by setting the LC_DEBUG environment variable:
//
//	LC_DEBUG=1 lcv --snapshot out.png
//
// When enabled, debug messages are written to stderr with timestamps.
// When disabled (default), all debug functions are no-ops with zero overhead.
//
// Usage:
//
//	import "github.com/Geddart/linearcal/pkg/debug"
//
//	func myFunc() {
//	    debug.Log("packing %d instances", count)
//	    // ...
//	    debug.LogTiming("myFunc", elapsed)
//	}
package debug

import (
	"log"
	"os"
	"time"
)

var (
	// enabled is true when LC_DEBUG env var is set
	enabled bool
	// logger writes to stderr with [LC_DEBUG] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("LC_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[LC_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[LC_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes an operation's elapsed time if debug logging is enabled.
func LogTiming(op string, elapsed time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %s", op, elapsed)
}
