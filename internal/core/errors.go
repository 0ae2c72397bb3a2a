// internal/core/errors.go
package core

import "errors"

// Define custom errors for better error handling and classification
var (
	ErrNoCredentials    = errors.New("no saved credentials found")
	ErrMissingShodanKey = errors.New("no Shodan API key configured")
	ErrEmptyCompletion  = errors.New("AI returned an empty or unusable completion")
	ErrNetworkError     = errors.New("network error occurred")
	ErrAPIError         = errors.New("API returned an error")
	ErrOutputFormat     = errors.New("unsupported output format")
	ErrFileWrite        = errors.New("failed to write to file")
)
