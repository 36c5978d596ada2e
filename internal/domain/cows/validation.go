package cows

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError junta los errores por campo (clave = nombre JSON del campo)
// para que la UI muestre cada uno al lado de su input.
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
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// AsValidationError extrae los errores por campo si err es de validación.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// reportar errores con el nombre JSON (earTag, no EarTag)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("cow_sex", func(fl validator.FieldLevel) bool {
		return Sex(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("cow_status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	return v
}

// mensajes por campo; el primer tag que falla define el texto
var fieldMessages = map[string]map[string]string{
	"earTag": {"required": "Ear tag is required"},
	"sex":    {"required": "Sex is required", "cow_sex": "Sex must be male or female"},
	"pen":    {"required": "Pen is required"},
	"status": {"cow_status": "Status must be Active, In Treatment or Deceased"},
	"weight": {"gt": "Weight must be a positive number"},
}

const msgEarTagTaken = "This ear tag already exists"

// validateStruct corre el validator y traduce a ValidationError (nil si todo OK).
func validateStruct(s any) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{"_": err.Error()}}
	}

	out := &ValidationError{Fields: map[string]string{}}
	for _, fe := range verrs {
		field := fe.Field()
		if _, done := out.Fields[field]; done {
			continue
		}
		msg := fieldMessages[field][fe.Tag()]
		if msg == "" {
			msg = "invalid value"
		}
		out.Fields[field] = msg
	}
	return out
}
