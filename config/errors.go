package config

import "fmt"

// An Error describes one violated configuration constraint.
type Error struct {
	// The offending setting, named after its command line flag.
	Field string

	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Errorf returns a configuration error for field.
func Errorf(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}
