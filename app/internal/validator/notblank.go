package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotBlankValidator rejects strings made only of whitespace. For string
// slices every element must be non-blank. Other kinds pass.
type NotBlankValidator struct{}

func NewNotBlankValidator() IValidator {
	return &NotBlankValidator{}
}

func (v *NotBlankValidator) Register() (validator.Func, string) {
	return func(fl validator.FieldLevel) bool {
		return notBlank(fl.Field())
	}, "notblank"
}

func notBlank(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return true
		}
		for i := range field.Len() {
			if !notBlank(field.Index(i)) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
