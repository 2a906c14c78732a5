// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Sura Fitness site.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"surafit/internal/crud"
	"surafit/internal/gateway"
	"surafit/internal/middleware"
	"surafit/internal/render"
	"surafit/internal/stats"
	"surafit/internal/store"
)

// PagePurger drops cached public pages after content changes.
// *cache.PageCache satisfies it.
type PagePurger interface {
	InvalidateAll(ctx context.Context)
}

// Uploader stores an image and returns its public URL.
// *storage.Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// Admin groups the back-office handlers and their dependencies.
type Admin struct {
	renderer *render.Renderer
	crud     *crud.Controller
	stats    *stats.Service
	leads    *store.LeadStore
	accounts Accounts
	pages    PagePurger
	uploads  Uploader
}

// NewAdmin creates the admin handler group. pages and uploads may be nil
// when Valkey page caching or object storage are not in use.
func NewAdmin(renderer *render.Renderer, ctl *crud.Controller, statsSvc *stats.Service, leads *store.LeadStore, accounts Accounts, pages PagePurger, uploads Uploader) *Admin {
	return &Admin{
		renderer: renderer,
		crud:     ctl,
		stats:    statsSvc,
		leads:    leads,
		accounts: accounts,
		pages:    pages,
		uploads:  uploads,
	}
}

// Dashboard renders the effective stats and the five newest leads.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := map[string]any{}

	figures, err := a.stats.Dashboard(ctx)
	if err != nil {
		slog.Error("dashboard stats failed", "error", err, "request_id", middleware.RequestIDFromCtx(ctx))
		data["Error"] = "Failed to load stats: " + gateway.Message(err)
	}
	data["Stats"] = figures

	recent, err := a.leads.List(ctx, 5)
	if err != nil {
		slog.Error("recent leads failed", "error", err, "request_id", middleware.RequestIDFromCtx(ctx))
	}
	data["RecentLeads"] = recent

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data:    data,
	})
}

// StatsPage renders the dashboard override form.
func (a *Admin) StatsPage(w http.ResponseWriter, r *http.Request) {
	a.renderStats(w, r, http.StatusOK, nil, "", false)
}

// StatsSave stores the submitted overrides. Blank fields clear an override.
func (a *Admin) StatsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := make(map[string]string, len(stats.Names))
	for _, name := range stats.Names {
		form[name] = r.PostForm.Get(name)
	}

	overrides, err := stats.Parse(form)
	if err != nil {
		a.renderStats(w, r, http.StatusUnprocessableEntity, form, err.Error(), false)
		return
	}
	if err := a.stats.Save(r.Context(), overrides); err != nil {
		slog.Error("save stats failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		a.renderStats(w, r, http.StatusUnprocessableEntity, form, "Failed to save stats: "+gateway.Message(err), false)
		return
	}
	slog.Info("stat overrides saved")
	a.renderStats(w, r, http.StatusOK, nil, "", true)
}

// StatsReset clears every override.
func (a *Admin) StatsReset(w http.ResponseWriter, r *http.Request) {
	if err := a.stats.Reset(r.Context()); err != nil {
		slog.Error("reset stats failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		a.renderStats(w, r, http.StatusUnprocessableEntity, nil, "Failed to reset stats: "+gateway.Message(err), false)
		return
	}
	slog.Info("stat overrides reset")
	a.renderStats(w, r, http.StatusOK, nil, "", true)
}

// renderStats draws the override form. A nil form shows the stored values.
func (a *Admin) renderStats(w http.ResponseWriter, r *http.Request, status int, form map[string]string, msg string, saved bool) {
	ctx := r.Context()

	overrides, err := a.stats.LoadOverrides(ctx)
	if err != nil {
		slog.Error("load stat overrides failed", "error", err, "request_id", middleware.RequestIDFromCtx(ctx))
		overrides = stats.Overrides{}
		if msg == "" {
			msg = "Failed to load stats: " + gateway.Message(err)
		}
	}
	counts, err := a.stats.LiveCounts(ctx)
	if err != nil {
		slog.Error("live counts failed", "error", err, "request_id", middleware.RequestIDFromCtx(ctx))
		counts = stats.Counts{}
		if msg == "" {
			msg = "Failed to load live counts: " + gateway.Message(err)
		}
	}
	if form == nil {
		form = stats.FormValues(overrides)
	}

	a.renderer.PageStatus(w, r, status, "stats", &render.PageData{
		Title:   "Dashboard Stats",
		Section: "stats",
		Data: map[string]any{
			"Stats": stats.Effective(overrides, counts),
			"Form":  form,
			"Error": msg,
			"Saved": saved,
		},
	})
}

// purge drops cached public pages after a successful mutation.
func (a *Admin) purge(ctx context.Context) {
	if a.pages != nil {
		a.pages.InvalidateAll(ctx)
	}
}
