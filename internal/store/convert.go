// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"surafit/internal/gateway"
	"surafit/internal/models"
)

func blogFromRow(r gateway.Row) models.Blog {
	return models.Blog{
		ID:       r.ID(),
		Title:    r.String("title"),
		Slug:     r.String("slug"),
		Excerpt:  r.String("excerpt"),
		Content:  r.String("content"),
		Author:   r.String("author"),
		Image:    r.String("image"),
		ReadTime: r.String("read_time"),
		Status:   r.String("status"),
		Date:     r.Time("date"),
	}
}

func offerFromRow(r gateway.Row) models.Offer {
	return models.Offer{
		ID:          r.ID(),
		Title:       r.String("title"),
		Description: r.String("description"),
		Details:     r.String("details"),
		ValidTill:   r.String("valid_till"),
		CTA:         r.String("cta"),
		IsActive:    r.Bool("is_active"),
		CreatedAt:   r.Time("created_at"),
	}
}

func testimonialFromRow(r gateway.Row) models.Testimonial {
	return models.Testimonial{
		ID:        r.ID(),
		Name:      r.String("name"),
		Role:      r.String("role"),
		Content:   r.String("content"),
		Rating:    int(r.Int("rating")),
		Avatar:    r.String("avatar"),
		CreatedAt: r.Time("created_at"),
	}
}

func transformationFromRow(r gateway.Row) models.Transformation {
	return models.Transformation{
		ID:          r.ID(),
		Name:        r.String("name"),
		Stats:       r.String("stats"),
		BeforeImage: r.String("before_image"),
		AfterImage:  r.String("after_image"),
		Duration:    r.String("duration"),
	}
}

func leadFromRow(r gateway.Row) models.Lead {
	return models.Lead{
		ID:        r.ID(),
		Name:      r.String("name"),
		Phone:     r.String("phone"),
		Message:   r.String("message"),
		Status:    r.String("status"),
		CreatedAt: r.Time("created_at"),
	}
}

func successStoryFromRow(r gateway.Row) models.SuccessStory {
	return models.SuccessStory{
		ID:    r.ID(),
		Stat:  r.String("stat"),
		Label: r.String("label"),
		Icon:  r.String("icon"),
	}
}

func programFromRow(r gateway.Row) models.Program {
	return models.Program{
		ID:            r.ID(),
		Icon:          r.String("icon"),
		Title:         r.String("title"),
		Description:   r.String("description"),
		ColorGradient: r.String("color_gradient"),
	}
}

// mapRows converts every row with fn.
func mapRows[T any](rows []gateway.Row, fn func(gateway.Row) T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}
