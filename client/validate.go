package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestPreconditions are checked before the first physical attempt. A
// violation raises a validation error with zero transport calls made.
type requestPreconditions struct {
	Method      string `validate:"required,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	Path        string `validate:"required"`
	MaxAttempts int    `validate:"min=0"`
}

var validate = validator.New()

func validateRequest(method string, req *Request) error {
	if req == nil {
		return NewValidationError("request is required", "")
	}

	pre := requestPreconditions{
		Method:      method,
		Path:        req.Path,
		MaxAttempts: req.MaxAttempts,
	}
	if err := validate.Struct(&pre); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return NewValidationError(preconditionMessage(fe), strings.ToLower(fe.Field()))
		}
		return NewValidationError(err.Error(), "")
	}
	return nil
}

func preconditionMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "oneof":
		return fmt.Sprintf("method %q is not a supported HTTP method", fe.Value())
	case "min":
		return fmt.Sprintf("%s must not be negative", strings.ToLower(fe.Field()))
	default:
		return fmt.Sprintf("%s failed validation", strings.ToLower(fe.Field()))
	}
}
