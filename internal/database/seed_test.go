// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"testing"
	"time"

	"surafit/internal/gateway"
	"surafit/internal/gateway/gatewaytest"
	"surafit/internal/models"
)

var seedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestSeedSamplesFillsEmptyTables(t *testing.T) {
	m := gatewaytest.New()

	if err := SeedSamples(context.Background(), m, seedNow); err != nil {
		t.Fatalf("SeedSamples: %v", err)
	}

	want := map[string]int{
		"offers":           1,
		"programs":         6,
		"testimonials":     4,
		"transformations":  3,
		"success_stories":  3,
		"blogs":            1,
		"content_sections": 6,
	}
	for table, n := range want {
		if got := len(m.Rows(table)); got != n {
			t.Errorf("%s: got %d rows, want %d", table, got, n)
		}
	}

	blog := m.Rows("blogs")[0]
	if blog.String("status") != models.BlogPublished {
		t.Errorf("sample blog status: %q", blog.String("status"))
	}
	if blog.String("date") != "2026-10-19" {
		t.Errorf("sample blog date: %q", blog.String("date"))
	}
	if len(m.Rows("leads")) != 0 || len(m.Rows("dashboard_stats")) != 0 {
		t.Error("leads and stat overrides are never seeded")
	}
}

func TestSeedSamplesKeepsExistingRows(t *testing.T) {
	m := gatewaytest.New()
	m.Seed("programs", gateway.Values{"title": "Kettlebell Basics", "description": "x"})

	if err := SeedSamples(context.Background(), m, seedNow); err != nil {
		t.Fatalf("SeedSamples: %v", err)
	}
	if err := SeedSamples(context.Background(), m, seedNow); err != nil {
		t.Fatalf("second SeedSamples: %v", err)
	}

	if got := len(m.Rows("programs")); got != 1 {
		t.Errorf("programs: got %d rows, want the single existing one", got)
	}
	if got := len(m.Rows("offers")); got != 1 {
		t.Errorf("offers: got %d rows after two runs, want 1", got)
	}
}

func TestSeedSamplesStopsOnBackendError(t *testing.T) {
	m := gatewaytest.New()
	m.Fail("count", "offers", &gateway.Error{Message: "permission denied"})

	if err := SeedSamples(context.Background(), m, seedNow); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSeedIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	admin := Account{Email: "admin@surafit.local", Password: "admin"}
	for i := 0; i < 2; i++ {
		if err := Seed(ctx, db, admin); err != nil {
			t.Fatalf("Seed run %d: %v", i+1, err)
		}
	}

	var users int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users < 1 {
		t.Errorf("expected at least 1 user, got %d", users)
	}

	var programs int
	if err := db.QueryRow("SELECT COUNT(*) FROM programs").Scan(&programs); err != nil {
		t.Fatalf("count programs: %v", err)
	}
	if programs < 1 {
		t.Errorf("expected seeded programs, got %d", programs)
	}
}
