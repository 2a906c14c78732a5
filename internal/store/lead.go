// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"surafit/internal/gateway"
	"surafit/internal/models"
)

// LeadStore handles lead capture and the admin lead pipeline.
type LeadStore struct {
	gw gateway.Gateway
}

// NewLeadStore creates a LeadStore over the given gateway.
func NewLeadStore(gw gateway.Gateway) *LeadStore {
	return &LeadStore{gw: gw}
}

// Create inserts one lead with status New. An empty message is stored as NULL.
func (s *LeadStore) Create(ctx context.Context, name, phone, message string) error {
	var msg any
	if m := strings.TrimSpace(message); m != "" {
		msg = m
	}
	_, err := s.gw.Insert(ctx, "leads", gateway.Values{
		"name":    strings.TrimSpace(name),
		"phone":   strings.TrimSpace(phone),
		"message": msg,
		"status":  models.LeadNew,
	})
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

// SetStatus moves a lead to another pipeline stage.
func (s *LeadStore) SetStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case models.LeadNew, models.LeadContacted, models.LeadEnrolled:
	default:
		return fmt.Errorf("set lead status: unknown status %q", status)
	}
	if err := s.gw.Update(ctx, "leads", gateway.Values{"status": status}, gateway.Eq("id", id)); err != nil {
		return fmt.Errorf("set lead status: %w", err)
	}
	return nil
}

// List returns leads newest first. A limit of 0 returns all of them.
func (s *LeadStore) List(ctx context.Context, limit int) ([]models.Lead, error) {
	rows, err := s.gw.Select(ctx, "leads", gateway.Query{Order: newestFirst, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return mapRows(rows, leadFromRow), nil
}

// ExportCSV writes every lead as CSV with a header row.
func (s *LeadStore) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	leads, err := s.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	return len(leads), WriteLeadsCSV(w, leads)
}

// WriteLeadsCSV encodes leads as CSV.
func WriteLeadsCSV(w io.Writer, leads []models.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "phone", "message", "status", "created_at"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, l := range leads {
		record := []string{
			strconv.FormatInt(l.ID, 10),
			spreadsheetSafe(l.Name),
			spreadsheetSafe(l.Phone),
			spreadsheetSafe(l.Message),
			l.Status,
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// spreadsheetSafe quotes visitor-supplied text that a spreadsheet would
// otherwise evaluate as a formula.
func spreadsheetSafe(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
