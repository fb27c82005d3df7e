package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names so messages match what the form and job variables use
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError is one out-of-domain attribute.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every attribute of a record that is outside its domain.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid student record: " + strings.Join(msgs, "; ")
}

// Validate checks every attribute against its form domain. It returns a
// *ValidationError listing all offending fields, or nil.
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: formatFieldError(fe),
		})
	}
	return out
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s (got %v)", e.Field(), e.Param(), e.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (got %v)", e.Field(), e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", e.Field(), e.Param(), fmt.Sprint(e.Value()))
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
