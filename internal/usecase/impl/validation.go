// Package impl contains the implementation of the application's business logic.
package impl

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"pressmart/internal/domain/entity"
	domainerrors "pressmart/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// imageURLPattern mirrors the URL shape accepted for product and avatar images.
var imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp)(\?.*)?$`)

// validate is the shared validator instance for all input DTOs.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the JSON field name the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	// image_url: http(s) URL ending in a known image extension.
	if err := v.RegisterValidation("image_url", func(fl validator.FieldLevel) bool {
		return imageURLPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	// category: member of the closed category set.
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entity.IsValidCategory(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// validateInput runs the shared validator over an input DTO and converts the
// result into a domain ValidationError that reports every violated field at
// once rather than failing on the first.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate input")
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = ruleMessage(fe)
	}

	return domainerrors.NewValidationError(fields)
}

// ruleMessage renders a violated rule as a short human-readable description.
func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}

		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("cannot exceed %s characters", fe.Param())
		}

		return fmt.Sprintf("cannot exceed %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("cannot exceed %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "image_url":
		return "must be an http(s) URL pointing at a jpg, jpeg, png, gif or webp image"
	case "category":
		return "must be one of: " + strings.Join(entity.Categories, ", ")
	default:
		return "failed rule " + fe.Tag()
	}
}

// salePriceError is the shared field error for the cross-field sale price
// rule, which the validator tags cannot express for optional fields.
func salePriceError() error {
	return domainerrors.NewValidationError(map[string]string{
		"salePrice": "must be lower than price",
	})
}
