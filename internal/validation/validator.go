// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package validation wraps go-playground/validator with the custom rules
// used by admin forms and the public lead form.
package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"surafit/internal/slug"
)

var (
	// ymdShape checks the YYYY-MM-DD layout only. Calendar validity is
	// left to the backend column type.
	ymdShape   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phoneShape = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneStrip = regexp.MustCompile(`[\s\-()]`)
)

// Validator checks values against tag rules.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the custom "slug", "ymd" and "phone" tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		return ok && slug.Valid(value)
	})

	v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		return ok && ymdShape.MatchString(value)
	})

	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		return ok && phoneShape.MatchString(NormalizePhone(value))
	})

	return &Validator{v: v}
}

// Struct validates a tagged struct.
func (v *Validator) Struct(s any) error {
	return v.v.Struct(s)
}

// Var validates a single value against a tag expression such as "slug" or
// "omitempty,ymd".
func (v *Validator) Var(value any, tag string) error {
	return v.v.Var(value, tag)
}

// ValidationErrors extracts field errors from err, or nil if err is not a
// validation failure.
func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// NormalizePhone drops spaces, hyphens and parentheses so "+91 98765-43210"
// and "+919876543210" validate the same way.
func NormalizePhone(s string) string {
	return phoneStrip.ReplaceAllString(s, "")
}
