// Package validator wraps go-playground/validator so Echo can call c.Validate(req).
package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// EchoValidator adapts a *validator.Validate to the echo.Validator interface.
type EchoValidator struct {
	validate *validator.Validate
}

// New returns an EchoValidator ready to be assigned to echo.Echo.Validator.
func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

// Validate satisfies the echo.Validator interface. The returned error message
// is safe to show to the API caller.
func (ev *EchoValidator) Validate(i any) error {
	if err := ev.validate.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				msgs = append(msgs, fieldError(fieldErr))
			}

			return errors.New(strings.Join(msgs, "; "))
		}

		return err
	}

	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fieldErr.Tag())
	}
}
