// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"surafit/internal/middleware"
	"surafit/internal/models"
)

func enrol(u *models.User) {
	secret := "JBSWY3DPEHPK3PXP"
	u.TOTPSecret = &secret
	u.TOTPEnabled = true
}

func TestUsersListShowsAccounts(t *testing.T) {
	env := newTestEnv(t)
	coach := env.Users.add(t, "coach@surafit.local", "secret123", models.RoleAdmin)
	enrol(coach)
	env.Users.add(t, "editor@surafit.local", "secret123", models.RoleEditor)

	rec := httptest.NewRecorder()
	env.Admin.UsersList(rec, htmx(adminRequest(http.MethodGet, "/admin/users", nil)))

	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assertContains(t, body, "coach@surafit.local")
	assertContains(t, body, "editor@surafit.local")
	assertContains(t, body, "Enabled")
	assertContains(t, body, "Not set up")
	assertContains(t, body, "/admin/users/"+coach.ID.String()+"/reset-2fa")
}

func TestUsersListLoadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.Users.err = errors.New("connection refused")

	rec := httptest.NewRecorder()
	env.Admin.UsersList(rec, htmx(adminRequest(http.MethodGet, "/admin/users", nil)))

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Failed to load users.")
}

func TestUserResetTwoFA(t *testing.T) {
	env := newTestEnv(t)
	target := env.Users.add(t, "editor@surafit.local", "secret123", models.RoleEditor)
	enrol(target)

	r := adminRequest(http.MethodPost, "/admin/users/"+target.ID.String()+"/reset-2fa", nil, "id", target.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.UserResetTwoFA(rec, r)

	assertStatus(t, rec, http.StatusSeeOther)
	if got := rec.Header().Get("Location"); got != "/admin/users" {
		t.Errorf("Location: got %q", got)
	}
	if target.TOTPEnabled || target.TOTPSecret != nil {
		t.Error("second factor should be cleared")
	}
}

func TestUserResetTwoFARejectsSelfAndBadID(t *testing.T) {
	env := newTestEnv(t)

	t.Run("own account", func(t *testing.T) {
		r := adminRequest(http.MethodPost, "/admin/users/self/reset-2fa", nil)
		self := middleware.SessionFromCtx(r.Context()).UserID
		chi.RouteContext(r.Context()).URLParams.Add("id", self.String())

		rec := httptest.NewRecorder()
		env.Admin.UserResetTwoFA(rec, r)
		assertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.Admin.UserResetTwoFA(rec, adminRequest(http.MethodPost, "/admin/users/x/reset-2fa", nil, "id", "x"))
		assertStatus(t, rec, http.StatusBadRequest)
	})
}

func TestUserResetTwoFABackendFailure(t *testing.T) {
	env := newTestEnv(t)
	target := env.Users.add(t, "editor@surafit.local", "secret123", models.RoleEditor)
	env.Users.err = errors.New("connection refused")

	r := adminRequest(http.MethodPost, "/admin/users/"+target.ID.String()+"/reset-2fa", nil, "id", target.ID.String())
	rec := httptest.NewRecorder()
	env.Admin.UserResetTwoFA(rec, htmx(r))

	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertContains(t, rec.Body.String(), "Failed to reset two-factor. Please try again.")
}
