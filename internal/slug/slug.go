// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches any run of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

	// pattern is the shape every stored slug must have.
	pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Pattern is the textual form of the slug rule, used in form hints.
const Pattern = `^[a-z0-9]+(-[a-z0-9]+)*$`

// Generate creates a URL-friendly slug from the given string.
// Example: "30% Off — First Month!" → "30-off-first-month"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
