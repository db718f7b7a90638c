package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gosimple/slug"
)

var leadEmailRegex = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// IsLeadEmail applies the address check used by every intake form.
func IsLeadEmail(s string) bool {
	return leadEmailRegex.MatchString(s)
}

// NewValidator returns a validator that reports fields by their json (or
// form) name and knows the notblank, leademail and urlslug tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("leademail", func(fl validator.FieldLevel) bool {
		return IsLeadEmail(fl.Field().String())
	})

	_ = v.RegisterValidation("urlslug", func(fl validator.FieldLevel) bool {
		return slug.IsSlug(fl.Field().String())
	})

	return v
}

// ValidateStruct runs v over s and returns the field messages, or nil when s
// is valid.
func ValidateStruct(v *validator.Validate, s interface{}) (map[string]string, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}
	return FormatValidationErrors(validationErrors), nil
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		label := Humanize(field)
		switch err.Tag() {
		case "required", "notblank":
			errorMessages[field] = fmt.Sprintf("%s is required.", label)
		case "email", "leademail":
			errorMessages[field] = "Please enter a valid email address."
		case "url":
			errorMessages[field] = fmt.Sprintf("%s must be a valid URL.", label)
		case "numeric", "number":
			errorMessages[field] = fmt.Sprintf("%s must be a number.", label)
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", label, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", label, err.Param())
		case "urlslug":
			errorMessages[field] = fmt.Sprintf("%s may only contain lowercase letters, numbers and single hyphens.", label)
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", label, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s is invalid.", label)
		}
	}
	return errorMessages
}
