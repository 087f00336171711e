package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"vet-clinic/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var validate = NewValidate(SystemClock{})

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NewValidate builds a validator with the clinic tags registered:
// rut, cl_phone, not_future, not_future_date and username.
func NewValidate(clock Clock) *validator.Validate {
	v := validator.New()

	// use json names so errors match the request payload
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
		return validation.ValidateRUT(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("cl_phone", func(fl validator.FieldLevel) bool {
		return validation.ValidatePhone(fl.Field().String()) == nil
	})
	// string fields accept YYYY-MM-DD or RFC 3339
	_ = v.RegisterValidation("not_future", func(fl validator.FieldLevel) bool {
		switch val := fl.Field().Interface().(type) {
		case time.Time:
			return validation.ValidateNotFuture(val, clock.Now()) == nil
		case string:
			return validation.ValidateDateString(val, clock.Now()) == nil
		}
		return false
	})
	_ = v.RegisterValidation("not_future_date", func(fl validator.FieldLevel) bool {
		switch val := fl.Field().Interface().(type) {
		case time.Time:
			return validation.ValidateDateNotFuture(val, clock.Now()) == nil
		case string:
			return validation.ValidateDateString(val, clock.Now()) == nil
		}
		return false
	})

	return v
}

func ValidateStruct(data interface{}) map[string]string {
	return ValidateStructWith(validate, data)
}

func ValidateStructWith(v *validator.Validate, data interface{}) map[string]string {
	err := v.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			errs[fe.Field()] = getErrorMessage(fe)
		}
	}

	return errs
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "eqfield":
		return "Passwords do not match"
	case "username":
		return "Only letters, numbers and _ are allowed"
	case "uuid":
		return "Must be a valid UUID"
	case "rut":
		// name the expected check digit when the format is right
		if s, ok := err.Value().(string); ok {
			if verr := validation.ValidateRUT(s); verr != nil {
				return verr.Error()
			}
		}
		return "Invalid RUN"
	case "cl_phone":
		return validation.ErrPhoneFormat.Error()
	case "not_future", "not_future_date":
		if s, ok := err.Value().(string); ok {
			if _, _, perr := validation.ParseDate(s, time.UTC); perr != nil {
				return perr.Error()
			}
		}
		return validation.ErrFutureDate.Error()
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errs map[string]string) string {
	return validation.Errors(errs).Error()
}
