// file: internals/helpers/validate.go
package helper

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateStruct runs validator/v10 over a DTO and converts the result
// into the field-error map JsonValidationError expects. Returns nil when valid.
func ValidateStruct(s any) map[string][]string {
	if err := Validator().Struct(s); err != nil {
		out := map[string][]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				field := strings.ToLower(fe.Field())
				out[field] = append(out[field], fe.Tag())
			}
			return out
		}
		return map[string][]string{"_": {err.Error()}}
	}
	return nil
}
