// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"

	"surafit/internal/validation"
)

// leadInput is the submitted lead form.
type leadInput struct {
	Name    string `validate:"required,max=100"`
	Phone   string `validate:"required,phone"`
	Message string `validate:"max=1000"`
}

// validateLead checks a lead submission and returns the first error found,
// or "" when the input is acceptable.
func validateLead(v *validation.Validator, in leadInput) string {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)

	errs := v.ValidationErrors(v.Struct(in))
	if len(errs) == 0 {
		return ""
	}
	fe := errs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return "Please tell us your name."
		}
		return "Name is too long (max 100 characters)."
	case "Phone":
		if fe.Tag() == "required" {
			return "Please enter your phone number."
		}
		return "Please enter a valid phone number, e.g. +91 98765 43210."
	case "Message":
		return "Message is too long (max 1,000 characters)."
	}
	return "Please check the form and try again."
}
