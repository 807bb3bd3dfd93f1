package schema

import (
	"fmt"
	"strings"
)

// ValidationError describes a single violated field constraint
type ValidationError struct {
	Field      string      `json:"field"`
	Constraint string      `json:"constraint"`
	Value      interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Constraint)
}

// ValidationErrors collects every violation found in one input.
// Validation never stops at the first failure.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether a violation was recorded for the given field
func (e ValidationErrors) Has(field string) bool {
	for _, v := range e {
		if v.Field == field {
			return true
		}
	}
	return false
}

// AsValidationErrors unwraps err into ValidationErrors if it is one
func AsValidationErrors(err error) (ValidationErrors, bool) {
	verrs, ok := err.(ValidationErrors)
	return verrs, ok
}
