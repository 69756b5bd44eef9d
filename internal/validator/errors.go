package validator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownValidator matches UnknownValidatorError.
	ErrUnknownValidator = errors.New("unknown validator")

	// ErrMissingAttribute matches MissingAttributeError.
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrNoScope is returned when a factory builds a value that implements
	// none of the scope interfaces.
	ErrNoScope = errors.New("validator implements no scope")
)

// UnknownValidatorError is returned when a configuration names a validator
// the registry does not know.
type UnknownValidatorError struct {
	Name string
}

func (e *UnknownValidatorError) Error() string {
	return fmt.Sprintf("unknown validator %q", e.Name)
}

func (e *UnknownValidatorError) Is(target error) bool {
	return target == ErrUnknownValidator
}

// MissingAttributeError reports a mandatory attribute that was not set.
type MissingAttributeError struct {
	Validator string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: attribute %q is required", e.Validator, e.Attribute)
}

func (e *MissingAttributeError) Is(target error) bool {
	return target == ErrMissingAttribute
}

// ConfigError is a load-time failure of one validator.
type ConfigError struct {
	Validator string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configure %s: %v", e.Validator, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
