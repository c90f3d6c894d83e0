package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Request & Input-Validation Errors
var (
	ErrValidation          = errors.New("validation error")
	ErrNoChanges           = errors.New("No data to update")
	ErrMaxBodySizeExceeded = errors.New("max body size exceeded")
)

// FieldError points at one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewValidationError(fields ...FieldError) *ApiErr {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrValidation,
		Details:    fmt.Sprintf("invalid fields: %s", strings.Join(names, ", ")),
		Fields:     fields,
	}
}

// NewValidationErrorFromDecode turns a json decoding failure into a validation error,
// pointing at the field when the decoder knows it.
func NewValidationErrorFromDecode(cause error) *ApiErr {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	var field FieldError
	switch {
	case errors.As(cause, &typeErr) && typeErr.Field != "":
		field = FieldError{Field: typeErr.Field, Message: fmt.Sprintf("invalid value: %s", typeErr.Value)}
	case errors.As(cause, &syntaxErr):
		field = FieldError{Field: "body", Message: fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset)}
	default:
		field = FieldError{Field: "body", Message: cause.Error()}
	}

	apiErr := NewValidationError(field)
	apiErr.Cause = cause
	return apiErr
}

func NewInvalidPathParamError(name, reason string) *ApiErr {
	apiErr := NewValidationError(FieldError{Field: name, Message: reason})
	apiErr.Field = name
	return apiErr
}

func NewNoChangesError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrNoChanges,
	}
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrMaxBodySizeExceeded,
		Details:    fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize),
		Field:      "body",
	}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNoChanges(err error) bool {
	return errors.Is(err, ErrNoChanges)
}

func IsMaxBodySizeExceededError(err error) bool {
	return errors.Is(err, ErrMaxBodySizeExceeded)
}
