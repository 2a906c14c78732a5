// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres implements Gateway on a database/sql pool opened with the pgx
// stdlib driver. Identifiers are quoted with pgx.Identifier so table and
// column names coming from resource descriptors never reach SQL raw.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a gateway backed by the given connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Select returns all rows matching the query.
func (p *Postgres) Select(ctx context.Context, table string, q Query) ([]Row, error) {
	query, args := buildSelect(table, q)
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPg(fmt.Sprintf("select %s", table), err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, wrapPg(fmt.Sprintf("select %s", table), err)
	}
	return out, nil
}

// Single returns exactly one row or a CodeNoRows error.
func (p *Postgres) Single(ctx context.Context, table string, q Query) (Row, error) {
	q.Limit = 2
	rows, err := p.Select(ctx, table, q)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, ErrNoRows(table)
	}
	return rows[0], nil
}

// Count returns the number of rows matching the filters.
func (p *Postgres) Count(ctx context.Context, table string, filters ...Filter) (int, error) {
	where, args := buildWhere(filters, 1)
	query := "SELECT COUNT(*) FROM " + ident(table) + where

	var n int
	if err := p.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrapPg(fmt.Sprintf("count %s", table), err)
	}
	return n, nil
}

// Insert adds rows in a single statement and returns them as stored.
func (p *Postgres) Insert(ctx context.Context, table string, rows ...Values) ([]Row, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	query, args, err := buildInsert(table, rows)
	if err != nil {
		return nil, err
	}

	res, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPg(fmt.Sprintf("insert %s", table), err)
	}
	defer res.Close()

	out, err := scanRows(res)
	if err != nil {
		return nil, wrapPg(fmt.Sprintf("insert %s", table), err)
	}
	return out, nil
}

// Update assigns values to the rows matching filters.
func (p *Postgres) Update(ctx context.Context, table string, values Values, filters ...Filter) error {
	query, args, err := buildUpdate(table, values, filters)
	if err != nil {
		return err
	}

	res, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapPg(fmt.Sprintf("update %s", table), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s rows affected: %w", table, err)
	}
	if n == 0 {
		return ErrNoRows(table)
	}
	return nil
}

// Delete removes the rows matching filters.
func (p *Postgres) Delete(ctx context.Context, table string, filters ...Filter) error {
	if len(filters) == 0 {
		return fmt.Errorf("delete %s: refusing to delete without a filter", table)
	}
	where, args := buildWhere(filters, 1)
	if _, err := p.db.ExecContext(ctx, "DELETE FROM "+ident(table)+where, args...); err != nil {
		return wrapPg(fmt.Sprintf("delete %s", table), err)
	}
	return nil
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func buildWhere(filters []Filter, start int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	n := start
	for _, f := range filters {
		if f.Value == nil {
			parts = append(parts, ident(f.Column)+" IS NULL")
			continue
		}
		args = append(args, f.Value)
		parts = append(parts, fmt.Sprintf("%s = $%d", ident(f.Column), n))
		n++
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func buildSelect(table string, q Query) (string, []any) {
	where, args := buildWhere(q.Filters, 1)
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(ident(table))
	b.WriteString(where)

	if len(q.Order) > 0 {
		parts := make([]string, len(q.Order))
		for i, o := range q.Order {
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			parts[i] = ident(o.Column) + " " + dir
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), args
}

// sortedColumns returns the keys of v in a stable order so generated SQL
// is deterministic.
func sortedColumns(v Values) []string {
	cols := make([]string, 0, len(v))
	for c := range v {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

func buildInsert(table string, rows []Values) (string, []any, error) {
	cols := sortedColumns(rows[0])
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", ident(table)), nil, nil
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}

	args := make([]any, 0, len(rows)*len(cols))
	tuples := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(cols) {
			return "", nil, fmt.Errorf("insert %s: rows must share the same columns", table)
		}
		ph := make([]string, len(cols))
		for i, c := range cols {
			v, ok := row[c]
			if !ok {
				return "", nil, fmt.Errorf("insert %s: row missing column %q", table, c)
			}
			args = append(args, v)
			ph[i] = fmt.Sprintf("$%d", len(args))
		}
		tuples = append(tuples, "("+strings.Join(ph, ", ")+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s RETURNING *",
		ident(table), strings.Join(quoted, ", "), strings.Join(tuples, ", "))
	return query, args, nil
}

func buildUpdate(table string, values Values, filters []Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, fmt.Errorf("update %s: refusing to update without a filter", table)
	}
	if len(values) == 0 {
		return "", nil, fmt.Errorf("update %s: no values", table)
	}

	cols := sortedColumns(values)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(filters))
	for i, c := range cols {
		args = append(args, values[c])
		sets[i] = fmt.Sprintf("%s = $%d", ident(c), len(args))
	}

	where, whereArgs := buildWhere(filters, len(args)+1)
	args = append(args, whereArgs...)
	return fmt.Sprintf("UPDATE %s SET %s%s", ident(table), strings.Join(sets, ", "), where), args, nil
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = Normalize(vals[i])
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// wrapPg converts driver errors into *Error, keeping the Postgres SQLSTATE
// as the code so callers can detect uniqueness conflicts.
func wrapPg(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{Code: pgErr.Code, Message: pgErr.Message, Err: fmt.Errorf("%s: %w", op, err)}
	}
	return fmt.Errorf("%s: %w", op, err)
}
