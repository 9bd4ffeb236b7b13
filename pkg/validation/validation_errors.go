package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors converts validator.ValidationErrors to ordered field errors
func FormatValidationErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		out = append(out, FieldError{Field: fieldPath(e), Message: formatSingleError(e)})
	}
	return out
}

// fieldPath drops the root struct name from the namespace:
// "JobCreateRequest.data.salary" -> "data.salary".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return "is required"

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at least %s items", param)
		}
		return fmt.Sprintf("must be at least %s", param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at most %s items", param)
		}
		return fmt.Sprintf("must be at most %s", param)

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)

	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", param)

	case "email":
		return "must be a valid email address"

	case "url":
		return "must be a valid URL"

	case "uuid", "uuid4":
		return "must be a valid id"

	case "handle":
		return "may only contain lowercase letters, digits, '-' and '_' (2-64 characters)"

	case "username":
		return "may only contain letters, digits, '.', '-' and '_' (1-64 characters)"

	case "valid_name":
		return "may only contain letters, spaces and common punctuation (. ' - /)"

	case "no_emoji":
		return "must not contain emoji or special symbols"

	case "ltefield":
		return fmt.Sprintf("must not be after %s", param)

	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}
