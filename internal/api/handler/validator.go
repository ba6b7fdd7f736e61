package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/staffdesk/staffdesk-web/internal/core/validate"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// The employee_name and employee_email tags delegate to the pure predicates in
// core/validate, keeping one source of truth for the acceptance rules.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()
	mustRegister(v, "employee_name", func(fl validator.FieldLevel) bool {
		return validate.Name(fl.Field().String()) == nil
	})
	mustRegister(v, "employee_email", func(fl validator.FieldLevel) bool {
		return validate.Email(fl.Field().String()) == nil
	})
	return &echoValidator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %s: %v", tag, err))
	}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return &ValidationError{fields: ve}
		}
		return err
	}
	return nil
}

// ValidationError carries the per-field failures while presenting the fixed
// user-facing texts as its message.
type ValidationError struct {
	fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.fields))
	for _, fe := range e.fields {
		msgs = append(msgs, fieldError(fe))
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return e.fields }

// FieldMessages maps a validation error to per-field messages for inline
// display next to form fields. Returns nil when err carries no field errors.
func FieldMessages(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[strings.ToLower(fe.Field())] = fieldError(fe)
	}
	return out
}

// fieldError converts a single ValidationError into the message shown to the
// user. The custom tags reuse the fixed texts from core/validate.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "employee_name":
		return validate.MsgInvalidName
	case "employee_email":
		return validate.MsgInvalidEmail
	case "required":
		return field + " is required"
	case "oneof":
		if field == "role" {
			return "Please choose a role (Admin or User)."
		}
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
