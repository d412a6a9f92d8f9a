package entity

import "fmt"

// ValidationError reports a single rejected input field. Handlers map it to
// a 400 response; everything else surfaces as a server error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
