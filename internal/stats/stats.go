// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package stats manages the dashboard stat overrides: a singleton row whose
// nullable fields, when set, replace the live counts shown on the admin
// dashboard.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"surafit/internal/gateway"
	"surafit/internal/models"
)

const (
	table = "dashboard_stats"

	// singletonID is the identity of the only overrides row.
	singletonID int64 = 1
)

// Stat names, also used as column and form field names.
const (
	TotalLeads    = "total_leads"
	ActiveClients = "active_clients"
	BlogPosts     = "blog_posts"
	Testimonials  = "testimonials"
)

// Names lists the stats in display order.
var Names = []string{TotalLeads, ActiveClients, BlogPosts, Testimonials}

// Labels maps stat names to dashboard captions.
var Labels = map[string]string{
	TotalLeads:    "Total Leads",
	ActiveClients: "Active Clients",
	BlogPosts:     "Blog Posts",
	Testimonials:  "Testimonials",
}

// Overrides holds the optional manual values. Nil means "use the live count".
type Overrides map[string]*int64

// Counts holds the live values derived from the other tables.
type Counts map[string]int64

// Stat is one dashboard figure.
type Stat struct {
	Name       string
	Label      string
	Value      int64
	Live       int64
	Overridden bool
}

// Service reads live counts and reads or writes the overrides row.
type Service struct {
	gw  gateway.Gateway
	now func() time.Time
}

// NewService creates a stats service over gw.
func NewService(gw gateway.Gateway) *Service {
	return &Service{gw: gw, now: time.Now}
}

// LoadOverrides reads the singleton row. A missing row is the normal empty
// state and yields all-nil overrides.
func (s *Service) LoadOverrides(ctx context.Context) (Overrides, error) {
	row, err := s.gw.Single(ctx, table, gateway.Query{Filters: []gateway.Filter{gateway.Eq("id", singletonID)}})
	if gateway.IsNoRows(err) {
		return Overrides{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load stat overrides: %w", err)
	}
	out := make(Overrides, len(Names))
	for _, name := range Names {
		out[name] = row.IntPtr(name)
	}
	return out, nil
}

// LiveCounts counts leads, enrolled leads, blog posts and testimonials.
func (s *Service) LiveCounts(ctx context.Context) (Counts, error) {
	type query struct {
		name    string
		table   string
		filters []gateway.Filter
	}
	queries := []query{
		{TotalLeads, "leads", nil},
		{ActiveClients, "leads", []gateway.Filter{gateway.Eq("status", models.LeadEnrolled)}},
		{BlogPosts, "blogs", nil},
		{Testimonials, "testimonials", nil},
	}

	out := make(Counts, len(queries))
	for _, q := range queries {
		n, err := s.gw.Count(ctx, q.table, q.filters...)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", q.name, err)
		}
		out[q.name] = int64(n)
	}
	return out, nil
}

// Effective combines overrides and live counts: an override wins when set.
func Effective(o Overrides, c Counts) []Stat {
	out := make([]Stat, 0, len(Names))
	for _, name := range Names {
		st := Stat{Name: name, Label: Labels[name], Value: c[name], Live: c[name]}
		if v := o[name]; v != nil {
			st.Value = *v
			st.Overridden = true
		}
		out = append(out, st)
	}
	return out
}

// Dashboard loads overrides and live counts and returns the effective stats.
// A failed override read falls back to live counts.
func (s *Service) Dashboard(ctx context.Context) ([]Stat, error) {
	counts, err := s.LiveCounts(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.LoadOverrides(ctx)
	if err != nil {
		slog.Warn("stat overrides unavailable, showing live counts", "error", err)
		overrides = Overrides{}
	}
	return Effective(overrides, counts), nil
}

// Parse converts submitted form values into overrides. Blank fields become
// nil; anything else must be a non-negative whole number.
func Parse(form map[string]string) (Overrides, error) {
	out := make(Overrides, len(Names))
	for _, name := range Names {
		raw := strings.TrimSpace(form[name])
		if raw == "" {
			out[name] = nil
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a whole number", Labels[name])
		}
		out[name] = &n
	}
	return out, nil
}

// Save writes the overrides: update the singleton first and insert it when
// the update reports no matching row.
func (s *Service) Save(ctx context.Context, o Overrides) error {
	values := gateway.Values{"updated_at": s.now()}
	for _, name := range Names {
		if v := o[name]; v != nil {
			values[name] = *v
		} else {
			values[name] = nil
		}
	}

	err := s.gw.Update(ctx, table, values, gateway.Eq("id", singletonID))
	if err == nil {
		return nil
	}
	if !gateway.IsNoRows(err) {
		return fmt.Errorf("save stat overrides: %w", err)
	}

	values["id"] = singletonID
	if _, err := s.gw.Insert(ctx, table, values); err != nil {
		return fmt.Errorf("insert stat overrides: %w", err)
	}
	return nil
}

// Reset clears every override so live counts are shown.
func (s *Service) Reset(ctx context.Context) error {
	return s.Save(ctx, Overrides{})
}

// FormValues renders overrides as form strings, blank for nil.
func FormValues(o Overrides) map[string]string {
	out := make(map[string]string, len(Names))
	for _, name := range Names {
		if v := o[name]; v != nil {
			out[name] = strconv.FormatInt(*v, 10)
		} else {
			out[name] = ""
		}
	}
	return out
}
