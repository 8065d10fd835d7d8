package portwatch

import "errors"

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound = errors.New("serial device not found")
	ErrInvalidConfig  = errors.New("invalid monitor configuration")

	// Provider errors. The reconciler recovers from all of these by falling
	// back to the minimal provider; they never reach Monitor callers.
	ErrProviderUnavailable = errors.New("enumeration provider unavailable")
	ErrProviderEmpty       = errors.New("enumeration provider returned no ports")
	ErrProviderTimeout     = errors.New("enumeration provider timed out")

	// USB-related errors
	ErrUSBInfoNotAvailable = errors.New("USB device information not available")
)
