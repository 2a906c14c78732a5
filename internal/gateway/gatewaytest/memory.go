// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package gatewaytest provides an in-memory gateway.Gateway for tests. It
// assigns sequential ids, stamps created_at, enforces declared unique and
// NOT NULL columns with the Postgres error codes and records every call so tests
// can assert how many backend operations a screen performed.
package gatewaytest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"surafit/internal/gateway"
)

// Call records one gateway operation.
type Call struct {
	Op    string // select, single, count, insert, update, delete
	Table string
}

// Memory is a goroutine-safe in-memory table backend.
type Memory struct {
	mu       sync.Mutex
	tables   map[string][]gateway.Row
	nextID   map[string]int64
	unique   map[string][]string
	notNull  map[string][]string
	failures map[string]error
	clock    time.Time
	calls    []Call
}

// New creates an empty in-memory backend.
func New() *Memory {
	return &Memory{
		tables:   make(map[string][]gateway.Row),
		nextID:   make(map[string]int64),
		unique:   make(map[string][]string),
		notNull:  make(map[string][]string),
		failures: make(map[string]error),
		clock:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// Unique declares columns whose values must be distinct within table.
func (m *Memory) Unique(table string, cols ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unique[table] = append(m.unique[table], cols...)
}

// NotNull declares columns of table that reject an explicit NULL. As in
// Postgres, an omitted column is left to its default and not checked.
func (m *Memory) NotNull(table string, cols ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notNull[table] = append(m.notNull[table], cols...)
}

// Fail makes every subsequent op on table return err. Pass nil to clear.
func (m *Memory) Fail(op, table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := op + ":" + table
	if err == nil {
		delete(m.failures, key)
		return
	}
	m.failures[key] = err
}

// Seed inserts rows without recording calls or checking constraints.
func (m *Memory) Seed(table string, rows ...gateway.Values) []gateway.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]gateway.Row, 0, len(rows))
	for _, v := range rows {
		out = append(out, m.insertLocked(table, v))
	}
	return out
}

// Rows returns a copy of every row currently stored in table.
func (m *Memory) Rows(table string) []gateway.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]gateway.Row, len(m.tables[table]))
	for i, r := range m.tables[table] {
		out[i] = copyRow(r)
	}
	return out
}

// Calls returns the number of recorded calls for op on table. An empty
// table counts op across all tables.
func (m *Memory) Calls(op, table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Op == op && (table == "" || c.Table == table) {
			n++
		}
	}
	return n
}

// Mutations returns the number of insert, update and delete calls recorded.
func (m *Memory) Mutations() int {
	return m.Calls("insert", "") + m.Calls("update", "") + m.Calls("delete", "")
}

func (m *Memory) record(op, table string) error {
	m.calls = append(m.calls, Call{Op: op, Table: table})
	return m.failures[op+":"+table]
}

// Select implements gateway.Gateway.
func (m *Memory) Select(_ context.Context, table string, q gateway.Query) ([]gateway.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("select", table); err != nil {
		return nil, err
	}
	return m.selectLocked(table, q), nil
}

// Single implements gateway.Gateway.
func (m *Memory) Single(_ context.Context, table string, q gateway.Query) (gateway.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("single", table); err != nil {
		return nil, err
	}
	rows := m.selectLocked(table, q)
	if len(rows) != 1 {
		return nil, gateway.ErrNoRows(table)
	}
	return rows[0], nil
}

// Count implements gateway.Gateway.
func (m *Memory) Count(_ context.Context, table string, filters ...gateway.Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("count", table); err != nil {
		return 0, err
	}
	return len(m.selectLocked(table, gateway.Query{Filters: filters})), nil
}

// Insert implements gateway.Gateway.
func (m *Memory) Insert(_ context.Context, table string, rows ...gateway.Values) ([]gateway.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("insert", table); err != nil {
		return nil, err
	}
	for _, v := range rows {
		if err := m.checkNotNullLocked(table, gateway.Row(v)); err != nil {
			return nil, err
		}
		if err := m.checkUniqueLocked(table, gateway.Row(v), -1); err != nil {
			return nil, err
		}
	}
	out := make([]gateway.Row, 0, len(rows))
	for _, v := range rows {
		out = append(out, m.insertLocked(table, v))
	}
	return out, nil
}

// Update implements gateway.Gateway.
func (m *Memory) Update(_ context.Context, table string, values gateway.Values, filters ...gateway.Filter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("update", table); err != nil {
		return err
	}

	if err := m.checkNotNullLocked(table, gateway.Row(values)); err != nil {
		return err
	}

	matched := 0
	for i, r := range m.tables[table] {
		if !matches(r, filters) {
			continue
		}
		next := copyRow(r)
		for k, v := range values {
			next[k] = gateway.Normalize(v)
		}
		if err := m.checkUniqueLocked(table, next, i); err != nil {
			return err
		}
		m.tables[table][i] = next
		matched++
	}
	if matched == 0 {
		return gateway.ErrNoRows(table)
	}
	return nil
}

// Delete implements gateway.Gateway.
func (m *Memory) Delete(_ context.Context, table string, filters ...gateway.Filter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("delete", table); err != nil {
		return err
	}
	if len(filters) == 0 {
		return fmt.Errorf("delete %s: refusing to delete without a filter", table)
	}
	kept := m.tables[table][:0]
	for _, r := range m.tables[table] {
		if !matches(r, filters) {
			kept = append(kept, r)
		}
	}
	m.tables[table] = kept
	return nil
}

func (m *Memory) insertLocked(table string, v gateway.Values) gateway.Row {
	row := make(gateway.Row, len(v)+2)
	for k, val := range v {
		row[k] = gateway.Normalize(val)
	}
	if id, ok := row["id"].(int64); ok {
		if id > m.nextID[table] {
			m.nextID[table] = id
		}
	} else {
		m.nextID[table]++
		row["id"] = m.nextID[table]
	}
	if _, ok := row["created_at"]; !ok {
		m.clock = m.clock.Add(time.Second)
		row["created_at"] = m.clock
	}
	m.tables[table] = append(m.tables[table], row)
	return copyRow(row)
}

func (m *Memory) checkNotNullLocked(table string, candidate gateway.Row) error {
	for _, col := range m.notNull[table] {
		if val, ok := candidate[col]; ok && gateway.Normalize(val) == nil {
			return &gateway.Error{
				Code:    gateway.CodeNotNullViolation,
				Message: fmt.Sprintf("null value in column %q of relation %q violates not-null constraint", col, table),
			}
		}
	}
	return nil
}

func (m *Memory) checkUniqueLocked(table string, candidate gateway.Row, skip int) error {
	for _, col := range m.unique[table] {
		val, ok := candidate[col]
		if !ok || val == nil {
			continue
		}
		for i, r := range m.tables[table] {
			if i == skip {
				continue
			}
			if equal(r[col], gateway.Normalize(val)) {
				return &gateway.Error{
					Code:    gateway.CodeUniqueViolation,
					Message: fmt.Sprintf("duplicate key value violates unique constraint %q", table+"_"+col+"_key"),
				}
			}
		}
	}
	return nil
}

func (m *Memory) selectLocked(table string, q gateway.Query) []gateway.Row {
	var out []gateway.Row
	for _, r := range m.tables[table] {
		if matches(r, q.Filters) {
			out = append(out, copyRow(r))
		}
	}
	if len(q.Order) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.Order {
				c := compare(out[i][o.Column], out[j][o.Column])
				if c == 0 {
					continue
				}
				if o.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func matches(r gateway.Row, filters []gateway.Filter) bool {
	for _, f := range filters {
		if !equal(r[f.Column], gateway.Normalize(f.Value)) {
			return false
		}
	}
	return true
}

func equal(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return a == b
}

// compare orders values the way Postgres does for the types we store.
// NULL sorts after every value in ascending order.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	switch x := a.(type) {
	case int64:
		y, _ := b.(int64)
		return cmpOrdered(x, y)
	case string:
		y, _ := b.(string)
		return cmpOrdered(x, y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
	return 0
}

func cmpOrdered[T int64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func copyRow(r gateway.Row) gateway.Row {
	out := make(gateway.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
