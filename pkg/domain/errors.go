package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError (errors.Is).
var ErrConfiguration = errors.New("configuration error")

// ErrValidation is matched by every ValidationError (errors.Is).
var ErrValidation = errors.New("validation error")

// ErrNotStarted is returned when Respond is called before Start.
var ErrNotStarted = &ConfigurationError{Reason: "Form not started. Call start() first."}

// ConfigurationError reports misuse of the session API or an invalid static
// configuration (unknown field, dependency cycle). It is fatal to the call.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// CycleError builds the configuration error raised by the ordering engine.
func CycleError(field string) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf("circular dependency detected involving %s", field),
	}
}

// ValidationError reports that raw text could not be coerced for a field, or
// that the collected data failed aggregate validation. It is always recoverable.
type ValidationError struct {
	Field  string
	Reason string
	// Details holds individual failures of an aggregate validation.
	Details []string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages returns the user-facing messages carried by the error.
func (e *ValidationError) Messages() []string {
	if len(e.Details) > 0 {
		return append([]string(nil), e.Details...)
	}
	return []string{e.Reason}
}
