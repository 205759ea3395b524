// Package validation evaluates the intake form rule sets. Failures come back
// as field-scoped messages; they block submission at the handler and never
// abort orchestration.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/carex-health/carex-api/internal/model"
)

// phoneRegex accepts an optional 1-2 digit country code, an optionally
// parenthesized area code, and space/dot/dash separators.
var phoneRegex = regexp.MustCompile(`^(\+\d{1,2}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// Validator evaluates request structs against their rule sets.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the custom phone, consent and idtype rules
// registered. Field names in error maps come from json tags.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("consent", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
	})
	v.RegisterValidation("idtype", func(fl validator.FieldLevel) bool {
		return model.IsKnownIdentificationType(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate returns nil when req passes its rule set, otherwise the
// field-scoped messages.
func (v *Validator) Validate(req interface{}) FieldErrors {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": err.Error()}
	}

	fieldErrs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fieldErrs[fe.Field()] = messageFor(fe)
	}
	return fieldErrs
}

// fieldMessages overrides the generic per-tag templates where the form shows
// a specific message.
var fieldMessages = map[string]map[string]string{
	"treatment_consent": {
		"consent": "You must consent to treatment in order to proceed",
	},
	"disclosure_consent": {
		"consent": "You must consent to disclosure in order to proceed",
	},
	"privacy_consent": {
		"consent": "You must consent to privacy in order to proceed",
	},
	"birth_date": {
		"required": "A date of birth is required",
	},
	"gender": {
		"required": "Gender is required",
		"oneof":    "Gender is required",
	},
	"identification_documents": {
		"max": "Maximum 1 file is allowed",
	},
	"size": {
		"lt": "File size must be less than 1MB",
	},
}

func messageFor(fe validator.FieldError) string {
	if byTag, ok := fieldMessages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "email":
		return "Must be a valid email"
	case "phone":
		return "Must be a valid phone number"
	case "uuid":
		return "Must be a valid identifier"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "idtype":
		return "Must be a recognized identification type"
	default:
		return "Invalid value"
	}
}
