package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/cherries/internal/error_values"
)

const ShareCodeLength = 9

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("share_code", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if len(value) != ShareCodeLength {
				return false
			}
			for _, char := range value {
				if char < '0' || char > '9' {
					return false
				}
			}
			return true
		})
	})
}

// NormalizeShareCode drops every non-digit, so "123-456 789" becomes "123456789".
func NormalizeShareCode(code string) string {
	var b strings.Builder
	for _, char := range code {
		if char >= '0' && char <= '9' {
			b.WriteRune(char)
		}
	}
	return b.String()
}

func validateStruct(s any) error {
	InitValidator()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields = append(fields, fieldErr.Field()+" failed on "+fieldErr.Tag())
		}
		return errorvalues.InvalidRequest("validation error: "+strings.Join(fields, ", "), err)
	}
	return errorvalues.InvalidRequest("validation unexpected error", err)
}
