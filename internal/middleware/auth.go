// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"surafit/internal/session"
)

type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"

	// LoginPath is where unauthenticated operators are sent.
	LoginPath = "/admin/login"

	// TwoFASetupPath is where operators enrol an authenticator.
	TwoFASetupPath = "/admin/2fa/setup"

	// TwoFAVerifyPath is where enrolled operators enter their code.
	TwoFAVerifyPath = "/admin/2fa/verify"
)

// SessionReader resolves the principal attached to a request.
// *session.Store satisfies it.
type SessionReader interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
}

// LoadSession stores the principal, if any, in the request context. It
// never blocks: a Valkey failure is logged and the request continues
// anonymously.
func LoadSession(store SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("load session failed", "error", err, "request_id", RequestIDFromCtx(r.Context()))
			}
			if data != nil {
				r = r.WithContext(context.WithValue(r.Context(), SessionKey, data))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth sends anonymous requests to the login page. HTMX requests get
// an HX-Redirect so the whole page navigates instead of swapping the login
// form into a fragment.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromCtx(r.Context()) == nil {
			Redirect(w, r, LoginPath)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require2FA holds signed-in operators on the second-factor pages until the
// session is marked complete. Enrolled accounts go to the code form and
// never back to setup. Must run after RequireAuth.
func Require2FA(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := SessionFromCtx(r.Context()); sess != nil && !sess.TwoFADone {
			if sess.TOTPEnrolled {
				Redirect(w, r, TwoFAVerifyPath)
			} else {
				Redirect(w, r, TwoFASetupPath)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects principals without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFromCtx(r.Context()).IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx returns the principal, or nil for anonymous requests.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// Redirect navigates the browser to target, using HX-Redirect for HTMX
// requests and 303 See Other otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// IsHTMX reports whether the request was issued by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
