package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Feed errors
	ErrSourceUnavailable = fmt.Errorf("source unavailable")
	ErrUnknownSourceKind = fmt.Errorf("unknown source kind")

	// Remote task API errors
	ErrRemoteCall = fmt.Errorf("remote call failed")

	// Run-level errors
	ErrSourcesFailed = fmt.Errorf("one or more sources failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
