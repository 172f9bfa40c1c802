package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Upstream errors
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrStreamNotFound = fmt.Errorf("stream URL not found")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
