package preferences

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation requires an existing
// preferences document and the user has none. A plain read of a missing
// document is not an error; see PreferencesRepository.FindByUserKey.
var ErrNotFound = errors.New("user preferences not found")

// FieldError pins a validation failure to the input that caused it so the
// client can highlight the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field-level failures of one save attempt.
// Controllers map it to a 400 response; everything else from the store is a
// 500.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
