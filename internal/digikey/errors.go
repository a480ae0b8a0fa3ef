package digikey

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError is returned by authenticated calls when credentials are missing.
// It is raised before any network I/O.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing DigiKey credentials: %s must be set in the environment or .env file",
		strings.Join(e.Missing, " and "))
}

// AuthError reports a failed client-credentials exchange.
type AuthError struct {
	// StatusCode is the token endpoint's HTTP status, or 0 when no response was received.
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("oauth token request failed: %v", e.Err)
	}
	if e.Err != nil && e.Body == "" {
		return fmt.Sprintf("oauth token request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("oauth token request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError reports a DigiKey response whose status was not 200.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// ArgumentError reports a missing or malformed tool argument.
type ArgumentError struct {
	Tool    string
	Arg     string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %q %s", e.Tool, e.Arg, e.Message)
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsAuthError reports whether err is or wraps an AuthError.
func IsAuthError(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

// IsAPIError reports whether err is or wraps an APIError.
func IsAPIError(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}
