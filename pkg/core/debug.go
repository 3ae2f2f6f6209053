package core

import "github.com/go-drift/oore/pkg/errors"

// DebugMode reports whether advisory diagnostics are surfaced.
// When false, diagnostics are dropped and offending entries are silently
// excluded. Fatal errors are reported either way.
func DebugMode() bool {
	return errors.DevMode()
}

// SetDebugMode enables or disables debug mode for the host.
func SetDebugMode(debug bool) {
	errors.SetDevMode(debug)
}
