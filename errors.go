package espnow

import "errors"

// Common errors for the espnow facade.
var (
	// ErrNotInitialized indicates the instance was killed or never started.
	ErrNotInitialized = errors.New("espnow not initialized")

	// ErrNoDriver indicates Options.Driver was not set.
	ErrNoDriver = errors.New("radio driver is required")

	// ErrNoActivitySource indicates no interface activity source is
	// available: Options.Activity was nil and the driver does not report
	// interface activity itself.
	ErrNoActivitySource = errors.New("interface activity source is required")
)
