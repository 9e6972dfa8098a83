package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared because the validator caches struct metadata; it is
// configured once here and never mutated afterwards.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages line up with the
	// payload keys the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates the `validate` tags on a typed record and returns the
// failures keyed by JSON field name, or nil.
func Struct(record any) FieldErrors {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return FieldErrors{SchemaField: {MsgInvalidInput}}
	}

	fieldErrors := FieldErrors{}
	for _, fe := range validationErrors {
		fieldErrors.Add(fe.Field(), message(fe))
	}
	return fieldErrors
}

// message converts a validator failure into a user-facing message.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Shorter than minimum length %s.", fe.Param())
		}
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Longer than maximum length %s.", fe.Param())
		}
		return fmt.Sprintf("Must be less than or equal to %s.", fe.Param())

	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())

	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())

	case "email":
		return "Not a valid email address."

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("Failed %s:%s validation.", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("Failed %s validation.", fe.Tag())
	}
}
