// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"surafit/internal/crud"
	"surafit/internal/gateway"
	"surafit/internal/handoff"
	"surafit/internal/models"
)

// FieldView is the data for the "form_field" template block.
type FieldView struct {
	Field       crud.Field
	Value       string
	ResourceKey string
	Derive      bool // post changes back so dependent fields refresh
	Uploads     bool // object storage is configured
	OOB         bool // render as an out-of-band swap
	Error       string
}

// InputID is the DOM id of the field's control.
func (f FieldView) InputID() string { return "f-" + f.Field.Name }

// Selected reports whether opt is the field's current value.
func (f FieldView) Selected(opt crud.Option) bool { return f.Value == opt.Value }

func funcMap(devMode bool) template.FuncMap {
	return template.FuncMap{
		"isDev": func() bool { return devMode },
		"activeClass": func(current, target string) string {
			if current == target {
				return "bg-gray-900 text-white"
			}
			return "text-gray-300 hover:bg-gray-700 hover:text-white"
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"fieldView": func(s *crud.Screen, f crud.Field, uploads, oob bool) FieldView {
			return FieldView{
				Field:       f,
				Value:       s.Form[f.Name],
				ResourceKey: s.Resource.Key,
				Derive:      s.Resource.Derive != nil && s.Creating(),
				Uploads:     uploads && f.Upload,
				OOB:         oob,
			}
		},
		"cell":       Cell,
		"badgeClass": BadgeClass,
		"rowLabel":   crud.Label,
		"isImage":    models.IsImageRef,
		"stars":      Stars,
		"date":       func(t time.Time) string { return formatTime(t, "Jan 2, 2006") },
		"truncate":   Truncate,
		"initials":   Initials,
		"followUp":   handoff.FollowUp,
		"year":       func() int { return time.Now().Year() },
		"dict":       dict,
	}
}

// Cell formats one list cell as plain text. Image columns are drawn by the
// template from the raw value.
func Cell(row gateway.Row, col crud.Column) string {
	switch col.Format {
	case crud.FormatDate:
		return formatTime(row.Time(col.Key), "Jan 2, 2006")
	case crud.FormatDateTime:
		return formatTime(row.Time(col.Key), "Jan 2, 2006 3:04 PM")
	case crud.FormatTruncate:
		return Truncate(row.String(col.Key), 80)
	case crud.FormatStars:
		return Stars(int(row.Int(col.Key)))
	case crud.FormatActive:
		if row.Bool(col.Key) {
			return "Active"
		}
		return "Inactive"
	}
	return row.String(col.Key)
}

// BadgeClass colours status badges.
func BadgeClass(value string) string {
	switch value {
	case models.BlogPublished, models.LeadEnrolled, "Active":
		return "bg-green-100 text-green-800"
	case models.LeadContacted:
		return "bg-blue-100 text-blue-800"
	case models.LeadNew:
		return "bg-amber-100 text-amber-800"
	}
	return "bg-gray-100 text-gray-700"
}

// Stars renders a rating as filled stars, clamped to 0..5.
func Stars(n int) string {
	n = max(0, min(n, 5))
	return strings.Repeat("★", n)
}

// Truncate shortens s to n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "…"
}

// Initials returns up to two upper-case initials for an avatar fallback.
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		out = append(out, []rune(strings.ToUpper(string(r)))...)
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(layout)
}

// dict builds a map from alternating keys and values for sub-templates.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}
