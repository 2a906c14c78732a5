// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package crud

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"surafit/internal/gateway"
)

// Form holds raw submitted values keyed by field name. Extra keys such as
// "slug_touched" carry UI state between requests.
type Form map[string]string

// FormFromValues copies the resource's fields (and any "_touched" markers)
// out of a parsed request body.
func FormFromValues(res *Resource, values url.Values) Form {
	form := make(Form, len(res.Fields))
	for _, f := range res.Fields {
		form[f.Name] = values.Get(f.Name)
		if t := values.Get(f.Name + "_touched"); t != "" {
			form[f.Name+"_touched"] = t
		}
	}
	return form
}

// FormFromRow fills a form with a stored row's values for editing.
func FormFromRow(res *Resource, row gateway.Row) Form {
	form := make(Form, len(res.Fields))
	for _, f := range res.Fields {
		form[f.Name] = row.String(f.Name)
	}
	return form
}

// DefaultForm returns the create form pre-filled with the resource defaults.
func DefaultForm(res *Resource) Form {
	form := make(Form, len(res.Fields))
	for _, f := range res.Fields {
		form[f.Name] = res.Defaults[f.Name]
	}
	return form
}

// Touched reports whether the user typed into field directly.
func (f Form) Touched(field string) bool {
	return f[field+"_touched"] == "true"
}

// Clone returns an independent copy of the form.
func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// toValues converts trimmed form strings into typed column values. Empty
// fields take the resource default, or NULL when there is none. A non-empty
// message reports a value that could not be converted.
func toValues(res *Resource, form Form) (gateway.Values, string) {
	values := make(gateway.Values, len(res.Fields))
	for _, f := range res.Fields {
		raw := strings.TrimSpace(form[f.Name])
		if raw == "" {
			raw = res.Defaults[f.Name]
		}
		if raw == "" {
			values[f.Name] = nil
			continue
		}

		typ := f.Type
		if f.Kind == KindNumber {
			typ = TypeInt
		}
		switch typ {
		case TypeInt:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 0 {
				return nil, fmt.Sprintf("%s must be a whole number.", f.Label)
			}
			values[f.Name] = n
		case TypeBool:
			values[f.Name] = raw == "true"
		default:
			values[f.Name] = raw
		}
	}
	return values, ""
}
