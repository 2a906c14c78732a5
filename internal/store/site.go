// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"surafit/internal/gateway"
	"surafit/internal/models"
)

// SiteStore serves the filtered reads behind the public pages.
type SiteStore struct {
	gw gateway.Gateway
}

// NewSiteStore creates a SiteStore over the given gateway.
func NewSiteStore(gw gateway.Gateway) *SiteStore {
	return &SiteStore{gw: gw}
}

var newestFirst = []gateway.Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}}

// FeaturedOffer returns the newest active offer, or nil when there is none.
func (s *SiteStore) FeaturedOffer(ctx context.Context) (*models.Offer, error) {
	rows, err := s.gw.Select(ctx, "offers", gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("is_active", true)},
		Order:   newestFirst,
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("featured offer: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	o := offerFromRow(rows[0])
	return &o, nil
}

// ActiveOffers returns every active offer, newest first.
func (s *SiteStore) ActiveOffers(ctx context.Context) ([]models.Offer, error) {
	rows, err := s.gw.Select(ctx, "offers", gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("is_active", true)},
		Order:   newestFirst,
	})
	if err != nil {
		return nil, fmt.Errorf("active offers: %w", err)
	}
	return mapRows(rows, offerFromRow), nil
}

// PublishedBlogs returns published posts, most recent date first.
func (s *SiteStore) PublishedBlogs(ctx context.Context) ([]models.Blog, error) {
	rows, err := s.gw.Select(ctx, "blogs", gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("status", models.BlogPublished)},
		Order:   []gateway.Order{{Column: "date", Desc: true}, {Column: "id", Desc: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("published blogs: %w", err)
	}
	return mapRows(rows, blogFromRow), nil
}

// PublishedBlogBySlug returns the published post with the given slug.
// Returns nil if no published post matches.
func (s *SiteStore) PublishedBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	row, err := s.gw.Single(ctx, "blogs", gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("slug", slug), gateway.Eq("status", models.BlogPublished)},
	})
	if gateway.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blog by slug: %w", err)
	}
	b := blogFromRow(row)
	return &b, nil
}

// Testimonials returns every testimonial, newest first.
func (s *SiteStore) Testimonials(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := s.gw.Select(ctx, "testimonials", gateway.Query{Order: newestFirst})
	if err != nil {
		return nil, fmt.Errorf("testimonials: %w", err)
	}
	return mapRows(rows, testimonialFromRow), nil
}

// Transformations returns gallery entries in insertion order.
func (s *SiteStore) Transformations(ctx context.Context) ([]models.Transformation, error) {
	rows, err := s.gw.Select(ctx, "transformations", gateway.Query{Order: []gateway.Order{{Column: "id"}}})
	if err != nil {
		return nil, fmt.Errorf("transformations: %w", err)
	}
	return mapRows(rows, transformationFromRow), nil
}

// Programs returns coaching programs in insertion order.
func (s *SiteStore) Programs(ctx context.Context) ([]models.Program, error) {
	rows, err := s.gw.Select(ctx, "programs", gateway.Query{Order: []gateway.Order{{Column: "id"}}})
	if err != nil {
		return nil, fmt.Errorf("programs: %w", err)
	}
	return mapRows(rows, programFromRow), nil
}

// SuccessStories returns the home page headline numbers in insertion order.
func (s *SiteStore) SuccessStories(ctx context.Context) ([]models.SuccessStory, error) {
	rows, err := s.gw.Select(ctx, "success_stories", gateway.Query{Order: []gateway.Order{{Column: "id"}}})
	if err != nil {
		return nil, fmt.Errorf("success stories: %w", err)
	}
	return mapRows(rows, successStoryFromRow), nil
}
