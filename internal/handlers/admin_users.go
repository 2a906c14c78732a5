// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"surafit/internal/middleware"
	"surafit/internal/models"
	"surafit/internal/render"
)

// Accounts lists operators and clears their second factor.
// *store.UserStore satisfies it.
type Accounts interface {
	List() ([]models.User, error)
	ResetTOTP(userID uuid.UUID) error
}

// UsersList renders every back-office account with its 2FA state.
func (a *Admin) UsersList(w http.ResponseWriter, r *http.Request) {
	a.renderUsers(w, r, http.StatusOK, "")
}

// UserResetTwoFA clears another operator's authenticator so they enrol
// again at their next sign-in.
func (a *Admin) UserResetTwoFA(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	// Own authenticator is reset from the CLI only.
	if targetID == sess.UserID {
		http.Error(w, "Cannot reset your own 2FA", http.StatusForbidden)
		return
	}

	if err := a.accounts.ResetTOTP(targetID); err != nil {
		slog.Error("reset 2fa failed", "error", err, "target_user", targetID, "request_id", middleware.RequestIDFromCtx(r.Context()))
		a.renderUsers(w, r, http.StatusUnprocessableEntity, "Failed to reset two-factor. Please try again.")
		return
	}

	slog.Info("2fa reset by admin", "admin", sess.Email, "target_user", targetID)
	middleware.Redirect(w, r, "/admin/users")
}

func (a *Admin) renderUsers(w http.ResponseWriter, r *http.Request, status int, msg string) {
	data := map[string]any{}
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		data["SelfID"] = sess.UserID
	}

	users, err := a.accounts.List()
	if err != nil {
		slog.Error("list users failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		if msg == "" {
			msg = "Failed to load users."
		}
	}
	data["Users"] = users
	if msg != "" {
		data["Error"] = msg
	}

	a.renderer.PageStatus(w, r, status, "users", &render.PageData{
		Title:   "Users",
		Section: "users",
		Data:    data,
	})
}
