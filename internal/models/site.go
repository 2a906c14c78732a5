// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// Blog publishing states.
const (
	BlogDraft     = "Draft"
	BlogPublished = "Published"
)

// Lead pipeline stages.
const (
	LeadNew       = "New"
	LeadContacted = "Contacted"
	LeadEnrolled  = "Enrolled"
)

// Blog is a post on the public blog. Content is HTML or Markdown.
type Blog struct {
	ID       int64
	Title    string
	Slug     string
	Excerpt  string
	Content  string
	Author   string
	Image    string
	ReadTime string
	Status   string
	Date     time.Time
}

// IsPublished reports whether the post is visible on the public site.
func (b Blog) IsPublished() bool {
	return b.Status == BlogPublished
}

// Offer is a promotional offer.
type Offer struct {
	ID          int64
	Title       string
	Description string
	Details     string
	ValidTill   string // YYYY-MM-DD, may be empty
	CTA         string
	IsActive    bool
	CreatedAt   time.Time
}

// Testimonial is a client review.
type Testimonial struct {
	ID        int64
	Name      string
	Role      string
	Content   string
	Rating    int
	Avatar    string
	CreatedAt time.Time
}

// AvatarIsImage reports whether the avatar is an image path or URL rather
// than an emoji or initials.
func (t Testimonial) AvatarIsImage() bool {
	return IsImageRef(t.Avatar)
}

// Stars returns Rating clamped to 1..5 with 5 as the default for unset ratings.
func (t Testimonial) Stars() int {
	switch {
	case t.Rating <= 0:
		return 5
	case t.Rating > 5:
		return 5
	}
	return t.Rating
}

// Transformation is a before/after gallery entry.
type Transformation struct {
	ID          int64
	Name        string
	Stats       string
	BeforeImage string
	AfterImage  string
	Duration    string
}

// Lead is an inquiry captured by the public lead form.
type Lead struct {
	ID        int64
	Name      string
	Phone     string
	Message   string
	Status    string
	CreatedAt time.Time
}

// SuccessStory is a headline number on the home page, e.g. "500+ Happy Clients".
type SuccessStory struct {
	ID    int64
	Stat  string
	Label string
	Icon  string
}

// Program is a coaching program card.
type Program struct {
	ID            int64
	Icon          string
	Title         string
	Description   string
	ColorGradient string
}

// IsImageRef reports whether s is a site path or an absolute http(s) URL.
func IsImageRef(s string) bool {
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
