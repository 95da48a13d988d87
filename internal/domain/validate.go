package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10}$`)

// ValidationError carries field-scoped messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps go-playground/validator with the lead form rules registered.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("leadphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("leadsource", func(fl validator.FieldLevel) bool {
		return Source(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("leadstatus", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// Struct validates s and converts failures into a *ValidationError.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		switch fe.Field() {
		case "firstName":
			return "First name cannot be empty"
		case "lastName":
			return "Last name cannot be empty"
		case "source":
			return "Select a source"
		case "status":
			return "Select a status"
		}
		return "Required"
	case "email":
		return "Invalid email address"
	case "leadphone":
		return "Invalid phone number"
	case "leadsource":
		return "Unknown source"
	case "leadstatus":
		return "Unknown status"
	case "numeric":
		return "Must be a number"
	case "max":
		return "Character limit exceeded"
	case "min":
		if fe.Field() == "password" {
			return "Password must be at least 6 characters"
		}
		return "Too short"
	}
	return "Invalid value"
}
