package config

import "errors"

var (
	// ErrOutOfRange indicates a field outside the range the form accepts.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownChart indicates a chart mode other than diffusion or improvement.
	ErrUnknownChart = errors.New("unknown chart mode")

	// ErrUnknownTheme indicates a colour theme the viewer does not define.
	ErrUnknownTheme = errors.New("unknown theme")
)

// FieldError ties a validation failure to the config field that caused it.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }
func (e *FieldError) Unwrap() error { return e.Err }
