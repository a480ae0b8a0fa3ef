package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	messages := make([]string, 0, len(ve))
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value interface{}) {
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// Validate checks the server and locale settings. Credentials are deliberately
// not validated here; see the package documentation.
func (c Config) Validate() error {
	var errs ValidationErrors

	switch c.Server.Transport {
	case MCPTransportStdio, MCPTransportSSE, MCPTransportStreamableHTTP:
	default:
		errs.Add("server.transport", fmt.Sprintf("must be one of %s, %s, %s",
			MCPTransportStdio, MCPTransportSSE, MCPTransportStreamableHTTP), c.Server.Transport)
	}

	if c.Server.Transport != MCPTransportStdio {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			errs.Add("server.port", "must be between 1 and 65535", c.Server.Port)
		}
		if c.Server.Host == "" {
			errs.Add("server.host", "is required for HTTP transports", c.Server.Host)
		}
	}

	if c.DigiKey.Locale.Site == "" {
		errs.Add("digikey.locale.site", "must not be empty", c.DigiKey.Locale.Site)
	}
	if c.DigiKey.Locale.Language == "" {
		errs.Add("digikey.locale.language", "must not be empty", c.DigiKey.Locale.Language)
	}
	if c.DigiKey.Locale.Currency == "" {
		errs.Add("digikey.locale.currency", "must not be empty", c.DigiKey.Locale.Currency)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
