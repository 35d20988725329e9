package engine

import (
	"errors"
	"fmt"
)

// Configuration and schema errors. Configuration errors are detected before
// the first iteration and end the run without output.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnsupportedField = errors.New("field not supported by the running kernel")
	ErrMalformedFilter  = errors.New("malformed filter")
	ErrSchemaChanged    = errors.New("source header changed since discovery")
)

// ConfigError records which option carried an invalid value.
type ConfigError struct {
	Option string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Option, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err with the option it came from.
func NewConfigError(option string, err error) error {
	return &ConfigError{Option: option, Err: err}
}

// Configf builds a ConfigError around ErrInvalidConfig with a formatted detail.
func Configf(option, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return &ConfigError{Option: option, Err: fmt.Errorf("%w: %s", ErrInvalidConfig, detail)}
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return true
	}
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrUnsupportedField) ||
		errors.Is(err, ErrMalformedFilter)
}
