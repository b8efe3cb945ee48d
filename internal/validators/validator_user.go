package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-auth-service/models"
)

// Field names as they appear in the JSON payloads.
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPassword = "password"
)

type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator returns a [Validator] for [models.SignupRequest] and
// [models.LoginRequest] (values or pointers).
func NewUserValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &UserValidator{validate: v}
}

// Validate checks obj against its validation tags. When fields are given,
// only those JSON fields are checked.
// Rule violations are reported as a single [*ValidationError].
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateStruct(ctx, &value, []string{FieldFullName, FieldEmail, FieldPassword}, fields...)
	case *models.SignupRequest:
		return v.validateStruct(ctx, value, []string{FieldFullName, FieldEmail, FieldPassword}, fields...)
	case models.LoginRequest:
		return v.validateStruct(ctx, &value, []string{FieldEmail, FieldPassword}, fields...)
	case *models.LoginRequest:
		return v.validateStruct(ctx, value, []string{FieldEmail, FieldPassword}, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *UserValidator) validateStruct(ctx context.Context, obj any, known []string, fields ...string) error {
	if reflect.ValueOf(obj).IsNil() {
		return fmt.Errorf("%w: nil %T", ErrUnsupportedType, obj)
	}

	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, obj)
	} else {
		structFields := make([]string, 0, len(fields))
		for _, f := range fields {
			if !slices.Contains(known, f) {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
			structFields = append(structFields, structFieldName(f))
		}
		err = v.validate.StructPartialCtx(ctx, obj, structFields...)
	}

	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}

	return &ValidationError{Messages: messages}
}

// structFieldName maps a JSON field name to its Go field name, which is
// what StructPartial expects.
func structFieldName(jsonName string) string {
	switch jsonName {
	case FieldFullName:
		return "FullName"
	case FieldEmail:
		return "Email"
	default:
		return "Password"
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
