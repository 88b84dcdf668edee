package router

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"authbase/internal/apperror"
)

// usernamePattern limits usernames to 3-30 alphanumeric or underscore characters.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// CustomValidator wraps validator for Echo, translating field errors into
// reader-friendly per-field messages instead of echoing Go struct paths.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the custom username rule.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperror.NewValidation(fieldMessages(fieldErrs), err)
	}
	return apperror.NewValidation("invalid request", err)
}

func fieldMessages(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fieldMessage(fe))
	}
	return strings.Join(messages, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "username":
		return field + " must be 3-30 characters of letters, digits or underscores"
	default:
		return field + " is invalid"
	}
}
