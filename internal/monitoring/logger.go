// Package monitoring provides the exporter's package-level diagnostic logger.
// Export progress, intrinsics warnings and catalog activity all go through
// Logf so callers (and tests) can redirect or mute the output in one place.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
