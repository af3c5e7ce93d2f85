package validation

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs the domain validation rules on gin's
// binding validator. Must run once before the router handles traffic.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// Passwords may not literally contain the word "password".
	return v.RegisterValidation("notpassword", func(fl validator.FieldLevel) bool {
		return !strings.Contains(strings.ToLower(fl.Field().String()), "password")
	})
}

// FieldErrors converts validator errors into a field -> message map for
// structured 400 responses. Non-validator errors yield a single generic entry.
func FieldErrors(err error) map[string]string {
	details := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		details["body"] = "request body is invalid"
		return details
	}

	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		details[field] = MessageFor(field, fieldErr.Tag(), fieldErr.Param())
	}

	return details
}
