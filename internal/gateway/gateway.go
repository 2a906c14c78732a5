// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gateway is the table-oriented data access layer shared by the
// admin CRUD screens and the public read views. Every operation names a
// table, takes equality filters and returns plain column maps, so one
// generic controller can drive all resources. Identities are assigned by
// the backend.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Well-known error codes surfaced through *Error.
const (
	// CodeUniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
	CodeUniqueViolation = "23505"

	// CodeNotNullViolation is the Postgres SQLSTATE for NULL in a NOT NULL column.
	CodeNotNullViolation = "23502"

	// CodeNoRows signals that a single-row read or an update matched nothing.
	CodeNoRows = "PGRST116"
)

// Row is one record as returned by the backend, keyed by column name.
type Row map[string]any

// Values is a set of column assignments for insert or update.
type Values map[string]any

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  any
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Order sorts results by one column.
type Order struct {
	Column string
	Desc   bool
}

// Query describes a filtered, ordered read.
type Query struct {
	Filters []Filter
	Order   []Order
	Limit   int // 0 means unlimited
}

// Gateway is the abstract remote table backend.
type Gateway interface {
	// Select returns all rows matching the query.
	Select(ctx context.Context, table string, q Query) ([]Row, error)

	// Single returns exactly one row. It fails with CodeNoRows when zero or
	// more than one row matches.
	Single(ctx context.Context, table string, q Query) (Row, error)

	// Count returns the number of rows matching the filters.
	Count(ctx context.Context, table string, filters ...Filter) (int, error)

	// Insert adds one or more rows and returns them as stored.
	Insert(ctx context.Context, table string, rows ...Values) ([]Row, error)

	// Update assigns values to every row matching the filters. It fails
	// with CodeNoRows when nothing matched.
	Update(ctx context.Context, table string, values Values, filters ...Filter) error

	// Delete removes every row matching the filters.
	Delete(ctx context.Context, table string, filters ...Filter) error
}

// Error is a backend failure carrying a machine-readable code.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (code %s)", e.Message, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the backend error code from err, or "" if it carries none.
func Code(err error) string {
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	return ""
}

// Message returns the backend's human-readable message for err.
func Message(err error) string {
	var gErr *Error
	if errors.As(err, &gErr) {
		return gErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsUniqueViolation reports whether err is a uniqueness conflict.
func IsUniqueViolation(err error) bool { return Code(err) == CodeUniqueViolation }

// IsNoRows reports whether err means "no matching row".
func IsNoRows(err error) bool { return Code(err) == CodeNoRows }

// ErrNoRows builds the distinguished "no matching row" error for a table.
func ErrNoRows(table string) error {
	return &Error{Code: CodeNoRows, Message: fmt.Sprintf("no matching row in %s", table)}
}

// ID returns the row's backend-assigned identity, or 0 if absent.
func (r Row) ID() int64 { return r.Int("id") }

// String returns a text column, or "" when null or absent.
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}

// Int returns an integer column, or 0 when null or absent.
func (r Row) Int(col string) int64 {
	n, _ := toInt64(r[col])
	return n
}

// IntPtr returns an integer column, or nil when null or absent.
func (r Row) IntPtr(col string) *int64 {
	n, ok := toInt64(r[col])
	if !ok {
		return nil
	}
	return &n
}

// Bool returns a boolean column. Text values "true" and "t" count as true.
func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "t"
	}
	return false
}

// Time returns a timestamp or date column, or the zero time when null,
// absent or unparseable. Text values in YYYY-MM-DD form are accepted.
func (r Row) Time(col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Normalize converts integer kinds to int64 so values compare consistently
// between drivers and in-memory backends.
func Normalize(v any) any {
	if n, ok := toInt64(v); ok {
		return n
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}
