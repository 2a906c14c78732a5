// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package resources declares the admin-managed tables as crud descriptors.
// Each descriptor carries the field list, ordering, defaults and the small
// per-resource hooks (slug derivation, create date) the generic controller
// calls into.
package resources

import (
	"time"

	"surafit/internal/crud"
	"surafit/internal/gateway"
	"surafit/internal/models"
	"surafit/internal/slug"
)

var newestFirst = []gateway.Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}}
var insertionOrder = []gateway.Order{{Column: "id"}}

// Blogs manages blog posts. The slug is derived from the title while
// creating until the user edits it, and the date is stamped on create only.
var Blogs = &crud.Resource{
	Key:             "blogs",
	Table:           "blogs",
	Singular:        "blog",
	Plural:          "blogs",
	Title:           "Manage Blog Posts",
	Description:     "Write and publish articles",
	AddLabel:        "Write New Post",
	EmptyText:       "No blog posts yet. Write your first post!",
	Layout:          crud.LayoutTable,
	Order:           []gateway.Order{{Column: "date", Desc: true}, {Column: "id", Desc: true}},
	RequiredMessage: "Please fill in all required fields (Title, Slug, Excerpt, Author).",
	UniqueMessage:   "A blog with this slug already exists. Please use a different slug.",
	Fields: []crud.Field{
		{Name: "title", Label: "Post Title", Kind: crud.KindText, Required: true},
		{Name: "slug", Label: "URL Slug", Kind: crud.KindText, Required: true, Placeholder: "auto-generated-from-title",
			Rule: "slug", RuleMessage: "Slug must contain only lowercase letters, numbers, and hyphens. It cannot start or end with a hyphen."},
		{Name: "excerpt", Label: "Excerpt", Kind: crud.KindTextarea, Required: true},
		{Name: "content", Label: "Content (HTML or Markdown)", Kind: crud.KindTextarea},
		{Name: "author", Label: "Author", Kind: crud.KindText, Required: true},
		{Name: "image", Label: "Image URL", Kind: crud.KindText, Upload: true},
		{Name: "read_time", Label: "Read Time", Kind: crud.KindText, Placeholder: "5 min read"},
		{Name: "status", Label: "Status", Kind: crud.KindSelect, Options: []crud.Option{
			{Value: models.BlogDraft, Label: "Draft"},
			{Value: models.BlogPublished, Label: "Published"},
		}},
	},
	Columns: []crud.Column{
		{Key: "title", Label: "Title"},
		{Key: "author", Label: "Author"},
		{Key: "date", Label: "Date", Format: crud.FormatDate},
		{Key: "status", Label: "Status", Format: crud.FormatBadge},
		{Key: "read_time", Label: "Read Time"},
	},
	Defaults: map[string]string{
		"author":    "Sura Fitness Team",
		"read_time": "5 min read",
		"status":    models.BlogDraft,
	},
	Prepare: func(values gateway.Values, creating bool, now time.Time) {
		if creating {
			values["date"] = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}
	},
	Derive: deriveSlug,
}

// deriveSlug recomputes the slug from the title while creating, as long as
// the user has not typed into the slug field.
func deriveSlug(form crud.Form, changed string, creating bool) crud.Form {
	if changed == "slug" {
		form["slug_touched"] = "true"
		return form
	}
	if changed != "title" || !creating {
		return form
	}
	if form["slug"] == "" || !form.Touched("slug") {
		form["slug"] = slug.Generate(form["title"])
		delete(form, "slug_touched")
	}
	return form
}

// Offers manages promotional offers.
var Offers = &crud.Resource{
	Key:             "offers",
	Table:           "offers",
	Singular:        "offer",
	Plural:          "offers",
	Title:           "Manage Offers",
	Description:     "Create and manage promotional offers",
	AddLabel:        "Add New Offer",
	EmptyText:       "No offers yet. Create your first offer!",
	Layout:          crud.LayoutGrid,
	Order:           newestFirst,
	RequiredMessage: "Please fill in all required fields (Title, Description).",
	Fields: []crud.Field{
		{Name: "title", Label: "Offer Title", Kind: crud.KindText, Required: true},
		{Name: "description", Label: "Description", Kind: crud.KindTextarea, Required: true},
		{Name: "details", Label: "Details (e.g., 30% off first month)", Kind: crud.KindText},
		{Name: "valid_till", Label: "Valid Until (YYYY-MM-DD)", Kind: crud.KindText, Placeholder: "2026-12-31",
			Rule: "ymd", RuleMessage: "Valid Until date must be in YYYY-MM-DD format."},
		{Name: "cta", Label: "Call to Action Button Text", Kind: crud.KindText},
		{Name: "is_active", Label: "Status", Kind: crud.KindSelect, Type: crud.TypeBool, Options: []crud.Option{
			{Value: "true", Label: "Active"},
			{Value: "false", Label: "Inactive"},
		}},
	},
	Columns: []crud.Column{
		{Key: "title", Label: "Title"},
		{Key: "description", Label: "Description", Format: crud.FormatTruncate},
		{Key: "details", Label: "Details"},
		{Key: "valid_till", Label: "Valid Till", Format: crud.FormatDate},
		{Key: "is_active", Label: "Status", Format: crud.FormatActive},
	},
	Defaults: map[string]string{
		"cta":       "Claim Offer",
		"is_active": "true",
	},
}

// Testimonials manages client reviews.
var Testimonials = &crud.Resource{
	Key:             "testimonials",
	Table:           "testimonials",
	Singular:        "testimonial",
	Plural:          "testimonials",
	Title:           "Manage Testimonials",
	Description:     "Add and edit client reviews",
	AddLabel:        "Add Testimonial",
	EmptyText:       "No testimonials yet. Add your first one!",
	Layout:          crud.LayoutGrid,
	Order:           newestFirst,
	RequiredMessage: "Please fill in all required fields.",
	Fields: []crud.Field{
		{Name: "name", Label: "Client Name", Kind: crud.KindText, Required: true},
		{Name: "role", Label: "Role/Title", Kind: crud.KindText, Required: true},
		{Name: "rating", Label: "Rating", Kind: crud.KindSelect, Type: crud.TypeInt, Options: []crud.Option{
			{Value: "5", Label: "5 Stars"},
			{Value: "4", Label: "4 Stars"},
			{Value: "3", Label: "3 Stars"},
		}},
		{Name: "content", Label: "Review Text", Kind: crud.KindTextarea, Required: true},
		{Name: "avatar", Label: "Avatar (emoji or image URL)", Kind: crud.KindText, Upload: true},
	},
	Columns: []crud.Column{
		{Key: "avatar", Label: "", Format: crud.FormatImage},
		{Key: "name", Label: "Name"},
		{Key: "role", Label: "Role"},
		{Key: "rating", Label: "Rating", Format: crud.FormatStars},
		{Key: "content", Label: "Review", Format: crud.FormatTruncate},
	},
	Defaults: map[string]string{
		"rating": "5",
	},
}

// Transformations manages before/after gallery entries, listed in
// insertion order.
var Transformations = &crud.Resource{
	Key:         "transformations",
	Table:       "transformations",
	Singular:    "transformation",
	Plural:      "transformations",
	Title:       "Manage Transformations",
	Description: "Before and after gallery entries",
	AddLabel:    "Add Transformation",
	EmptyText:   "No transformations yet.",
	Layout:      crud.LayoutGrid,
	Order:       insertionOrder,
	Fields: []crud.Field{
		{Name: "name", Label: "Name", Kind: crud.KindText, Required: true, Placeholder: "e.g., Priya"},
		{Name: "stats", Label: "Result", Kind: crud.KindText, Required: true, Placeholder: "e.g., Lost 12kg"},
		{Name: "before_image", Label: "Before Image URL", Kind: crud.KindText, Placeholder: "/person-before.jpg", Upload: true},
		{Name: "after_image", Label: "After Image URL", Kind: crud.KindText, Placeholder: "/person-after.jpg", Upload: true},
		{Name: "duration", Label: "Duration", Kind: crud.KindText, Placeholder: "e.g., 3 months"},
	},
	Columns: []crud.Column{
		{Key: "before_image", Label: "Before", Format: crud.FormatImage},
		{Key: "after_image", Label: "After", Format: crud.FormatImage},
		{Key: "name", Label: "Name"},
		{Key: "stats", Label: "Result"},
		{Key: "duration", Label: "Duration"},
	},
	Defaults: map[string]string{
		"duration": "3 months",
	},
}

// Leads lists lead form submissions. Rows are created by the public form
// only; the admin may change a lead's status or delete it.
var Leads = &crud.Resource{
	Key:         "leads",
	Table:       "leads",
	Singular:    "lead",
	Plural:      "leads",
	Title:       "Manage Leads",
	Description: "View and manage form submissions",
	EmptyText:   "No leads yet. Form submissions will appear here.",
	Layout:      crud.LayoutTable,
	Order:       newestFirst,
	ReadOnly:    true,
	Fields: []crud.Field{
		{Name: "name", Label: "Name", Kind: crud.KindText, Required: true},
		{Name: "phone", Label: "Phone", Kind: crud.KindText, Required: true, Rule: "phone", RuleMessage: "Please enter a valid phone number."},
		{Name: "message", Label: "Message", Kind: crud.KindTextarea},
		{Name: "status", Label: "Status", Kind: crud.KindSelect, Options: LeadStatusOptions},
	},
	Columns: []crud.Column{
		{Key: "name", Label: "Name"},
		{Key: "phone", Label: "Phone"},
		{Key: "message", Label: "Message", Format: crud.FormatTruncate},
		{Key: "created_at", Label: "Date", Format: crud.FormatDateTime},
		{Key: "status", Label: "Status", Format: crud.FormatBadge},
	},
}

// LeadStatusOptions are the lead pipeline stages.
var LeadStatusOptions = []crud.Option{
	{Value: models.LeadNew, Label: "New"},
	{Value: models.LeadContacted, Label: "Contacted"},
	{Value: models.LeadEnrolled, Label: "Enrolled"},
}

// SuccessStories manages the headline numbers on the home page.
var SuccessStories = &crud.Resource{
	Key:         "success-stories",
	Table:       "success_stories",
	Singular:    "success story",
	Plural:      "success stories",
	Title:       "Success Stories",
	Description: "Headline numbers shown on the home page",
	AddLabel:    "Add Stat",
	EmptyText:   "No success stories yet.",
	Layout:      crud.LayoutGrid,
	Order:       insertionOrder,
	Fields: []crud.Field{
		{Name: "stat", Label: "Stat", Kind: crud.KindText, Required: true, Placeholder: "e.g., 500+"},
		{Name: "label", Label: "Label", Kind: crud.KindText, Required: true, Placeholder: "e.g., Happy Clients"},
		{Name: "icon", Label: "Icon", Kind: crud.KindText, Placeholder: "e.g., 👥"},
	},
	Columns: []crud.Column{
		{Key: "icon", Label: "", Format: crud.FormatImage},
		{Key: "stat", Label: "Stat"},
		{Key: "label", Label: "Label"},
	},
}

// Programs manages the coaching programs showcase.
var Programs = &crud.Resource{
	Key:         "programs",
	Table:       "programs",
	Singular:    "program",
	Plural:      "programs",
	Title:       "Manage Programs",
	Description: "Fitness programs showcase",
	AddLabel:    "Add Program",
	EmptyText:   "No programs yet.",
	Layout:      crud.LayoutGrid,
	Order:       insertionOrder,
	Fields: []crud.Field{
		{Name: "icon", Label: "Icon", Kind: crud.KindText, Placeholder: "e.g., 💪"},
		{Name: "title", Label: "Title", Kind: crud.KindText, Required: true},
		{Name: "description", Label: "Description", Kind: crud.KindTextarea, Required: true},
		{Name: "color_gradient", Label: "Color Gradient", Kind: crud.KindSelect, Options: []crud.Option{
			{Value: "from-primary to-accent", Label: "Primary to Accent"},
			{Value: "from-accent to-primary", Label: "Accent to Primary"},
			{Value: "from-primary via-accent to-primary", Label: "Primary, Accent, Primary"},
		}},
	},
	Columns: []crud.Column{
		{Key: "icon", Label: "", Format: crud.FormatImage},
		{Key: "title", Label: "Title"},
		{Key: "description", Label: "Description", Format: crud.FormatTruncate},
	},
	Defaults: map[string]string{
		"color_gradient": "from-primary to-accent",
	},
}

// ContentSections manages the home page section summaries shown on the
// admin content overview.
var ContentSections = &crud.Resource{
	Key:         "content",
	Table:       "content_sections",
	Singular:    "section",
	Plural:      "content sections",
	Title:       "Manage Content",
	Description: "Edit website sections and content",
	AddLabel:    "Add Section",
	EmptyText:   "No content sections yet.",
	Layout:      crud.LayoutGrid,
	Order:       insertionOrder,
	Fields: []crud.Field{
		{Name: "name", Label: "Section Name", Kind: crud.KindText, Required: true},
		{Name: "description", Label: "Description", Kind: crud.KindText},
		{Name: "href", Label: "Admin Link", Kind: crud.KindText, Required: true, Placeholder: "/admin/offers"},
	},
	Columns: []crud.Column{
		{Key: "name", Label: "Section"},
		{Key: "description", Label: "Description"},
		{Key: "updated_at", Label: "Updated", Format: crud.FormatDate},
	},
	Prepare: func(values gateway.Values, _ bool, now time.Time) {
		values["updated_at"] = now
	},
}

// All lists the descriptors served by the generic admin screens, in
// navigation order.
var All = []*crud.Resource{
	Blogs, Offers, Testimonials, Transformations, Leads, SuccessStories, Programs, ContentSections,
}

// ByKey returns the descriptor whose Key matches, or nil.
func ByKey(key string) *crud.Resource {
	for _, r := range All {
		if r.Key == key {
			return r
		}
	}
	return nil
}
