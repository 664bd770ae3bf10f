package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/waymark/internal/core/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput checks struct tags on v and maps failures onto
// domain.ErrInvalidInput with a readable message.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gte", "gt":
		return fmt.Sprintf("%s must be %s %s", field, comparison(fe.Tag()), fe.Param())
	case "lte", "lt":
		return fmt.Sprintf("%s must be %s %s", field, comparison(fe.Tag()), fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}

func comparison(tag string) string {
	switch tag {
	case "gte":
		return "at least"
	case "gt":
		return "greater than"
	case "lte":
		return "at most"
	default:
		return "less than"
	}
}

// validateShape checks that the payload matching the shape kind is present.
func validateShape(shape domain.Shape) error {
	switch shape.Kind {
	case domain.ShapeCircle:
		if shape.Circle == nil {
			return fmt.Errorf("%w: circle shape needs a radius", domain.ErrInvalidInput)
		}
	case domain.ShapeRectangle:
		if shape.Rect == nil {
			return fmt.Errorf("%w: rectangle shape needs a width and height", domain.ErrInvalidInput)
		}
	}
	return nil
}
