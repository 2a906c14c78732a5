// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Sura Fitness site. Routes are split into a public group and an admin
// group, each with its own middleware stack.
package router

import (
	"io/fs"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"surafit/internal/handlers"
	"surafit/internal/middleware"
)

// Deps holds everything the router needs.
type Deps struct {
	Sessions middleware.SessionReader
	// Secure marks the CSRF cookie Secure. Set outside development.
	Secure bool
	// LoginLimit and LeadLimit throttle the two anonymous POST forms.
	LoginLimit *middleware.RateLimiter
	LeadLimit  *middleware.RateLimiter
	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []netip.Prefix
	// Static is served under /static/. It may be nil.
	Static fs.FS

	Admin  *handlers.Admin
	Auth   *handlers.Auth
	Public *handlers.Public
}

// New creates the chi router with all middleware and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Applied to every request.
	r.Use(middleware.RealIP(d.TrustedProxies))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	r.Get("/health", healthHandler)
	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(d.Static)))
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(d.Secure))

		// Reachable without a session.
		r.Get("/login", d.Auth.LoginPage)
		r.With(d.LoginLimit.Middleware).Post("/login", d.Auth.LoginSubmit)
		r.Post("/logout", d.Auth.Logout)

		// Signed in, second factor still pending.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", d.Auth.TwoFASetupPage)
			r.Get("/2fa/verify", d.Auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", d.Auth.TwoFAVerifySubmit)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", d.Admin.Dashboard)
			r.Get("/dashboard", d.Admin.Dashboard)
			r.Post("/uploads", d.Admin.Upload)

			r.Route("/stats", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", d.Admin.StatsPage)
				r.Post("/", d.Admin.StatsSave)
				r.Post("/reset", d.Admin.StatsReset)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", d.Admin.UsersList)
				r.Post("/{id}/reset-2fa", d.Admin.UserResetTwoFA)
			})

			// One set of routes serves every registered resource.
			r.Route("/{resource}", func(r chi.Router) {
				r.Get("/", d.Admin.List)
				r.Post("/", d.Admin.Create)
				r.Get("/new", d.Admin.New)
				r.Post("/derive", d.Admin.Derive)
				r.Get("/export", d.Admin.ExportLeads)

				r.Get("/{id}/edit", d.Admin.Edit)
				r.Put("/{id}", d.Admin.Update)
				r.Delete("/{id}", d.Admin.Delete)
				r.Get("/{id}/delete", d.Admin.DeletePrompt)
				r.Post("/{id}/status", d.Admin.LeadStatus)

				// Plain HTML forms cannot send PUT or DELETE.
				r.Post("/{id}", d.Admin.Update)
				r.Post("/{id}/delete", d.Admin.Delete)
			})
		})
	})

	r.Get("/", d.Public.Home)
	r.Get("/offers", d.Public.Offers)
	r.Get("/blog", d.Public.Blog)
	r.Get("/blog/{slug}", d.Public.BlogPost)
	r.Get("/testimonials", d.Public.Testimonials)
	r.Get("/programs", d.Public.Programs)
	r.Get("/policy", d.Public.Policy)
	r.Get("/contact", d.Public.Contact)
	r.With(d.LeadLimit.OnLimit(http.HandlerFunc(d.Public.LeadLimited)).Middleware).
		Post("/leads", d.Public.SubmitLead)

	r.NotFound(d.Public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
