package ml

import (
	"errors"
	"fmt"
)

// ErrSchema matches any *SchemaError via errors.Is.
var ErrSchema = errors.New("schema mismatch")

// SchemaError reports a record column that does not fit the model's input schema.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("schema mismatch on column %q: %s", e.Column, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// StartupError wraps any failure to load the model artifact.
type StartupError struct {
	Path string
	Err  error
}

func (e *StartupError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *StartupError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
