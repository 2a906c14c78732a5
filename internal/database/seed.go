// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"surafit/internal/gateway"
	"surafit/internal/models"
	"surafit/internal/store"
)

// Account is the first back-office login created by Seed.
type Account struct {
	Email    string
	Password string
}

// Seed populates an empty database with an admin account and sample site
// content. Tables that already hold rows are left alone, so it is safe to
// run on every start in development.
func Seed(ctx context.Context, db *sql.DB, admin Account) error {
	if err := SeedAdmin(store.NewUserStore(db), admin); err != nil {
		return err
	}
	return SeedSamples(ctx, gateway.NewPostgres(db), time.Now())
}

// SeedAdmin creates admin when no account exists yet. The operator is asked
// to enrol a second factor on first login when 2FA is required.
func SeedAdmin(users *store.UserStore, admin Account) error {
	n, err := users.Count()
	if err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if n > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	if _, err := users.Create(admin.Email, admin.Password, "Admin", models.RoleAdmin); err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}
	slog.Info("database seeded with default admin user", "email", admin.Email)
	return nil
}

// SeedSamples fills each empty site table with starter rows.
func SeedSamples(ctx context.Context, gw gateway.Gateway, now time.Time) error {
	for _, t := range sampleTables(now) {
		n, err := gw.Count(ctx, t.table)
		if err != nil {
			return fmt.Errorf("seed count %s: %w", t.table, err)
		}
		if n > 0 {
			continue
		}
		if _, err := gw.Insert(ctx, t.table, t.rows...); err != nil {
			return fmt.Errorf("seed insert %s: %w", t.table, err)
		}
		slog.Info("seeded sample rows", "table", t.table, "count", len(t.rows))
	}
	return nil
}

type sampleTable struct {
	table string
	rows  []gateway.Values
}

func sampleTables(now time.Time) []sampleTable {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	offer := store.FallbackOffer
	offers := []gateway.Values{{
		"title":       offer.Title,
		"description": offer.Description,
		"details":     "30% off first month",
		"valid_till":  today.AddDate(0, 1, 0),
		"cta":         offer.CTA,
		"is_active":   true,
	}}

	var programs []gateway.Values
	for _, p := range store.FallbackPrograms {
		programs = append(programs, gateway.Values{
			"icon":           p.Icon,
			"title":          p.Title,
			"description":    p.Description,
			"color_gradient": p.ColorGradient,
		})
	}

	var testimonials []gateway.Values
	for _, t := range store.FallbackTestimonials {
		testimonials = append(testimonials, gateway.Values{
			"name":    t.Name,
			"role":    t.Role,
			"content": t.Content,
			"rating":  int64(t.Rating),
			"avatar":  t.Avatar,
		})
	}

	var transformations []gateway.Values
	for _, t := range store.FallbackTransformations {
		transformations = append(transformations, gateway.Values{
			"name":     t.Name,
			"stats":    t.Stats,
			"duration": t.Duration,
		})
	}

	var stories []gateway.Values
	for _, s := range store.FallbackSuccessStories {
		stories = append(stories, gateway.Values{"stat": s.Stat, "label": s.Label, "icon": s.Icon})
	}

	blogs := []gateway.Values{{
		"title":     "Welcome to the Sura Fitness Blog",
		"slug":      "welcome-to-the-sura-fitness-blog",
		"excerpt":   "Training notes, nutrition tips and client stories from our coaches.",
		"content":   "## Hello!\n\nWe share **practical** advice that fits Indian home food and busy schedules.",
		"author":    "Sura Fitness Team",
		"read_time": "2 min read",
		"status":    models.BlogPublished,
		"date":      today,
	}}

	sections := []gateway.Values{
		{"name": "Offers", "description": "Promotional banner on the home page", "href": "/admin/offers"},
		{"name": "Programs", "description": "Services grid", "href": "/admin/programs"},
		{"name": "Transformations", "description": "Before and after gallery", "href": "/admin/transformations"},
		{"name": "Testimonials", "description": "Client reviews", "href": "/admin/testimonials"},
		{"name": "Success Stories", "description": "Headline numbers", "href": "/admin/success-stories"},
		{"name": "Blog", "description": "Articles and tips", "href": "/admin/blogs"},
	}
	for _, s := range sections {
		s["updated_at"] = now
	}

	return []sampleTable{
		{"offers", offers},
		{"programs", programs},
		{"testimonials", testimonials},
		{"transformations", transformations},
		{"success_stories", stories},
		{"blogs", blogs},
		{"content_sections", sections},
	}
}
