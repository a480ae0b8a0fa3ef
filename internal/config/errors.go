package config

import (
	"fmt"
)

// ConfigurationError represents a failure while reading one configuration source.
type ConfigurationError struct {
	Source    string // "yaml", "dotenv" or "env"
	FilePath  string // File that caused the error, empty for the process environment
	Key       string // Variable or field name, if known
	ErrorType string // "io", "parse" or "value"
	Message   string
	Err       error
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	location := ce.Source
	if ce.FilePath != "" {
		location = fmt.Sprintf("%s %s", ce.Source, ce.FilePath)
	}
	if ce.Key != "" {
		location = fmt.Sprintf("%s (%s)", location, ce.Key)
	}
	if ce.Err != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", ce.ErrorType, location, ce.Message, ce.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", ce.ErrorType, location, ce.Message)
}

// Unwrap returns the underlying error.
func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}
