package repo

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tazhibayda/thoughts-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names ("message"), not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateThought checks the write-time invariants of a new thought.
func ValidateThought(t *domain.Thought) error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]FieldError, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = FieldError{
			Message: describe(fe),
			Kind:    kindOf(fe.Tag()),
			Path:    fe.Field(),
			Value:   fe.Value(),
		}
	}
	return out
}

func kindOf(tag string) string {
	switch tag {
	case "min":
		return "minlength"
	case "max":
		return "maxlength"
	case "gte":
		return "min"
	}
	return tag
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Path `%s` is required.", fe.Field())
	case "min":
		return fmt.Sprintf("Path `%s` is shorter than the minimum allowed length (%s).", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Path `%s` is longer than the maximum allowed length (%s).", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("Path `%s` is less than minimum allowed value (%s).", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("Path `%s` failed %s validation.", fe.Field(), fe.Tag())
}
