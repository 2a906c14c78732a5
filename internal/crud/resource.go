// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package crud implements the one interaction lifecycle shared by every
// admin-managed table: list, create or edit through a form, validate,
// persist, refetch, and delete behind a confirmation. Resources plug in
// through a descriptor; the controller and the form renderer have no
// resource-specific knowledge.
package crud

import (
	"strings"
	"time"

	"surafit/internal/gateway"
)

// Kind is the input widget used for a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindNumber   Kind = "number"
)

// ValueType is the column type a submitted string is converted to.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeBool
)

// Option is one choice in a select field.
type Option struct {
	Value string
	Label string
}

// Field describes one form input.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Type        ValueType
	Options     []Option
	Required    bool
	Placeholder string

	// Rule is a validator tag applied to non-empty values, e.g. "slug".
	Rule        string
	RuleMessage string

	// Upload marks image URL fields that offer a file upload when object
	// storage is configured.
	Upload bool
}

// ColumnFormat controls how a list cell is rendered.
type ColumnFormat string

const (
	FormatText     ColumnFormat = ""
	FormatDate     ColumnFormat = "date"
	FormatDateTime ColumnFormat = "datetime"
	FormatBadge    ColumnFormat = "badge"
	FormatTruncate ColumnFormat = "truncate"
	FormatStars    ColumnFormat = "stars"
	FormatActive   ColumnFormat = "active"
	FormatImage    ColumnFormat = "image"
)

// Column is one list column.
type Column struct {
	Key    string
	Label  string
	Format ColumnFormat
}

// Layout selects between the table and card grid list renderers.
type Layout string

const (
	LayoutTable Layout = "table"
	LayoutGrid  Layout = "grid"
)

// Resource is the descriptor for one admin-managed table.
type Resource struct {
	// Key is the URL segment under /admin, e.g. "blogs".
	Key         string
	Table       string
	Singular    string
	Plural      string
	Title       string
	Description string
	AddLabel    string
	EmptyText   string

	Fields  []Field
	Columns []Column
	Order   []gateway.Order
	Layout  Layout

	// ReadOnly resources list rows but offer no create or edit form.
	ReadOnly bool

	// Defaults pre-fill the create form.
	Defaults map[string]string

	// RequiredMessage overrides the generated required-field message.
	RequiredMessage string

	// UniqueMessage replaces the backend text on a uniqueness conflict.
	UniqueMessage string

	// Prepare adjusts converted values before they are sent, e.g. stamping
	// a date on create.
	Prepare func(values gateway.Values, creating bool, now time.Time)

	// Derive recomputes dependent fields after the named field changed.
	Derive func(form Form, changed string, creating bool) Form
}

// Field returns the descriptor for name, or nil.
func (r *Resource) Field(name string) *Field {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}
	return nil
}

// CreateTitle is the heading of the create form.
func (r *Resource) CreateTitle() string {
	return "Add " + titleCase(r.Singular)
}

// EditTitle is the heading of the edit form.
func (r *Resource) EditTitle() string {
	return "Edit " + titleCase(r.Singular)
}

func (r *Resource) requiredMessage() string {
	if r.RequiredMessage != "" {
		return r.RequiredMessage
	}
	var labels []string
	for _, f := range r.Fields {
		if f.Required {
			labels = append(labels, f.Label)
		}
	}
	return "Please fill in all required fields (" + strings.Join(labels, ", ") + ")."
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
