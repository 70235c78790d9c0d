package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator() //nolint:gochecknoglobals

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so clients can map errors to their inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		if name == "" {
			return fld.Name
		}

		return name
	})

	// required accepts "   ", notblank rejects it
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return v
}

// Validate checks data and returns one entry per failing field.
func Validate(data any) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	seen := map[string]bool{}

	for _, fe := range verrs {
		field := fieldPath(fe)
		if seen[field] {
			continue
		}

		seen[field] = true

		out = append(out, FieldError{Field: field, Message: message(field, fe)})
	}

	return out
}

// fieldPath drops the top level struct name, e.g. contactRequest.email -> email.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if isString(fe) {
			return field + " must be at least " + param + " characters"
		}

		return field + " must be at least " + param
	case "max":
		if isString(fe) {
			return field + " must be at most " + param + " characters"
		}

		return field + " must be at most " + param
	case "gte":
		return field + " must be greater than or equal to " + param
	case "lte":
		return field + " must be less than or equal to " + param
	case "gt":
		return field + " must be greater than " + param
	case "oneof":
		return field + " must be one of: " + param
	case "url", "http_url":
		return field + " must be a valid url"
	case "hexcolor", "iscolor":
		return field + " must be a color"
	default:
		return field + " is invalid"
	}
}

func isString(fe validator.FieldError) bool {
	return fe.Kind() == reflect.String
}

// Bind parses the json body into out and validates it. When it returns
// false the error response is already written and err is the write result.
func Bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, BadBody(c)
	}

	if details := Validate(out); len(details) > 0 {
		return false, ValidationError(c, details)
	}

	return true, nil
}

// ValidateVar validates a single value against tag.
func ValidateVar(field string, value any, tag string) []FieldError {
	if err := validate.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return []FieldError{{Field: field, Message: message(field, verrs[0])}}
		}

		return []FieldError{{Field: field, Message: field + " is invalid"}}
	}

	return nil
}
