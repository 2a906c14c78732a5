// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"surafit/internal/cache"
	"surafit/internal/markdown"
	"surafit/internal/middleware"
	"surafit/internal/models"
	"surafit/internal/render"
	"surafit/internal/store"
	"surafit/internal/validation"
)

// homePrograms is how many fallback programs the home page shows.
const homePrograms = 4

// PageStore holds rendered public pages. *cache.PageCache satisfies it.
type PageStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

// Public groups the marketing site handlers. Anonymous page views are
// served from the Valkey page cache when possible and stored on a miss.
// A failed or empty read never breaks a page: placeholder content from
// package store takes its place. Pages built after a failed read are not
// cached, so the next visitor retries the database.
type Public struct {
	renderer  *render.Renderer
	site      *store.SiteStore
	leads     *store.LeadStore
	pageCache PageStore
	validate  *validation.Validator
}

// NewPublic creates the public handler group. pageCache may be nil.
func NewPublic(renderer *render.Renderer, site *store.SiteStore, leads *store.LeadStore, pageCache PageStore, v *validation.Validator) *Public {
	return &Public{
		renderer:  renderer,
		site:      site,
		leads:     leads,
		pageCache: pageCache,
		validate:  v,
	}
}

// Home renders the landing page.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "home", "Transform Your Body, Transform Your Life", "home", func(ctx context.Context, rd *pageReads) map[string]any {
		offer := store.FallbackOffer
		if featured, err := p.site.FeaturedOffer(ctx); err != nil {
			rd.failed = true
			slog.Warn("featured offer read failed, using placeholder", "error", err)
		} else if featured != nil {
			offer = *featured
		}

		programs, err := p.site.Programs(ctx)
		programs = orFallback(rd, "programs", programs, err, store.FallbackPrograms[:homePrograms])
		stories, err := p.site.SuccessStories(ctx)
		transformations, terr := p.site.Transformations(ctx)
		testimonials, cerr := p.site.Testimonials(ctx)

		return map[string]any{
			"Offer":           offer,
			"Programs":        programs,
			"Stories":         orFallback(rd, "success stories", stories, err, store.FallbackSuccessStories),
			"Transformations": orFallback(rd, "transformations", transformations, terr, store.FallbackTransformations),
			"Testimonials":    orFallback(rd, "testimonials", testimonials, cerr, store.FallbackTestimonials),
			"Lead":            render.LeadForm{},
		}
	})
}

// Offers lists the active offers.
func (p *Public) Offers(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "offers", "Offers", "offers", func(ctx context.Context, rd *pageReads) map[string]any {
		offers, err := p.site.ActiveOffers(ctx)
		return map[string]any{
			"Offers": orFallback(rd, "offers", offers, err, []models.Offer{store.FallbackOffer}),
		}
	})
}

// Blog lists the published posts, newest first.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "blog", "Blog", "blog", func(ctx context.Context, rd *pageReads) map[string]any {
		blogs, err := p.site.PublishedBlogs(ctx)
		return map[string]any{
			"Blogs": orFallback(rd, "blogs", blogs, err, store.FallbackBlogs),
		}
	})
}

// BlogPost renders one published post. Unknown or unpublished slugs get
// the 404 page.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if body, ok := p.cached(r); ok {
		writeHTML(w, http.StatusOK, body)
		return
	}

	blog, err := p.site.PublishedBlogBySlug(ctx, slug)
	if err != nil {
		slog.Warn("blog read failed", "slug", slug, "error", err)
	}
	if blog == nil {
		p.NotFound(w, r)
		return
	}

	body, err := p.renderer.Public(r, "blog_post", &render.PageData{
		Title:   blog.Title,
		Section: "blog",
		Data: map[string]any{
			"Blog": *blog,
			"Body": markdown.Body(blog.Content),
		},
	})
	if err != nil {
		p.renderFailed(w, r, err)
		return
	}
	p.store(r, body)
	writeHTML(w, http.StatusOK, body)
}

// Testimonials lists every testimonial, newest first.
func (p *Public) Testimonials(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "testimonials", "Testimonials", "testimonials", func(ctx context.Context, rd *pageReads) map[string]any {
		testimonials, err := p.site.Testimonials(ctx)
		return map[string]any{
			"Testimonials": orFallback(rd, "testimonials", testimonials, err, store.FallbackTestimonials),
		}
	})
}

// Programs lists every coaching program.
func (p *Public) Programs(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "programs", "Programs", "programs", func(ctx context.Context, rd *pageReads) map[string]any {
		programs, err := p.site.Programs(ctx)
		return map[string]any{
			"Programs": orFallback(rd, "programs", programs, err, store.FallbackPrograms),
		}
	})
}

// Policy renders the static terms and privacy page.
func (p *Public) Policy(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "policy", "Policies", "", nil)
}

// Contact renders the standalone lead form page.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "contact", "Contact", "contact", func(context.Context, *pageReads) map[string]any {
		return map[string]any{"Lead": render.LeadForm{}}
	})
}

// NotFound renders the public 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	body, err := p.renderer.Public(r, "not_found", &render.PageData{Title: "Page not found"})
	if err != nil {
		p.renderFailed(w, r, err)
		return
	}
	writeHTML(w, http.StatusNotFound, body)
}

// SubmitLead stores a lead from the public form. HTMX callers get the form
// fragment back, plain form posts get the contact page.
func (p *Public) SubmitLead(w http.ResponseWriter, r *http.Request) {
	form := render.LeadForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	if msg := validateLead(p.validate, leadInput{Name: form.Name, Phone: form.Phone, Message: form.Message}); msg != "" {
		form.Error = msg
		p.renderLeadForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}

	if err := p.leads.Create(r.Context(), form.Name, form.Phone, form.Message); err != nil {
		slog.Error("lead create failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		form.Error = "We could not save your details. Please try again or message us on WhatsApp."
		p.renderLeadForm(w, r, http.StatusUnprocessableEntity, form)
		return
	}
	slog.Info("lead received", "name", form.Name)

	p.renderLeadForm(w, r, http.StatusOK, render.LeadForm{Name: form.Name, Success: true})
}

// LeadLimited answers a lead submission rejected by the rate limiter.
func (p *Public) LeadLimited(w http.ResponseWriter, r *http.Request) {
	p.renderLeadForm(w, r, http.StatusTooManyRequests, render.LeadForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Message: strings.TrimSpace(r.FormValue("message")),
		Error:   "Too many submissions. Please wait a minute and try again.",
	})
}

func (p *Public) renderLeadForm(w http.ResponseWriter, r *http.Request, status int, form render.LeadForm) {
	data := &render.PageData{
		Title:   "Contact",
		Section: "contact",
		Data:    map[string]any{"Lead": form},
	}
	if middleware.IsHTMX(r) {
		p.renderer.PublicFragment(w, r, status, "contact", "lead_form", data)
		return
	}
	body, err := p.renderer.Public(r, "contact", data)
	if err != nil {
		p.renderFailed(w, r, err)
		return
	}
	writeHTML(w, status, body)
}

// pageReads records whether any read behind a page failed.
type pageReads struct{ failed bool }

// serve renders a public page through the page cache. build may be nil
// for static pages.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, name, title, section string, build func(context.Context, *pageReads) map[string]any) {
	if body, ok := p.cached(r); ok {
		writeHTML(w, http.StatusOK, body)
		return
	}

	var rd pageReads
	data := &render.PageData{Title: title, Section: section}
	if build != nil {
		data.Data = build(r.Context(), &rd)
	}
	body, err := p.renderer.Public(r, name, data)
	if err != nil {
		p.renderFailed(w, r, err)
		return
	}
	if !rd.failed {
		p.store(r, body)
	}
	writeHTML(w, http.StatusOK, body)
}

// cached looks the page up for anonymous visitors. A signed-in operator
// sees the admin link in the navbar, so their pages are never shared.
func (p *Public) cached(r *http.Request) ([]byte, bool) {
	if p.pageCache == nil || middleware.SessionFromCtx(r.Context()) != nil {
		return nil, false
	}
	return p.pageCache.Get(r.Context(), cache.PageKey(r.URL.Path))
}

func (p *Public) store(r *http.Request, body []byte) {
	if p.pageCache == nil || middleware.SessionFromCtx(r.Context()) != nil {
		return
	}
	p.pageCache.Set(r.Context(), cache.PageKey(r.URL.Path), body)
}

func (p *Public) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("public render failed", "path", r.URL.Path, "error", err,
		"request_id", middleware.RequestIDFromCtx(r.Context()))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// orFallback returns rows, or the placeholder records when the read failed
// or came back empty. Failures are logged and marked on rd.
func orFallback[T any](rd *pageReads, what string, rows []T, err error, fallback []T) []T {
	if err != nil {
		rd.failed = true
		slog.Warn("public read failed, using placeholders", "view", what, "error", err)
		return fallback
	}
	if len(rows) == 0 {
		return fallback
	}
	return rows
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
