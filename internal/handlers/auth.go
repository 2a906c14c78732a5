// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"surafit/internal/middleware"
	"surafit/internal/models"
	"surafit/internal/render"
	"surafit/internal/session"
)

// loginFailed is shown for every rejected sign-in, whatever the cause.
const loginFailed = "Invalid login credentials"

// Users is the account lookup the auth handlers need.
// *store.UserStore satisfies it.
type Users interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uuid.UUID) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
	SetTOTPSecret(userID uuid.UUID, secret string) error
	EnableTOTP(userID uuid.UUID) error
}

// Sessions persists the signed-in principal. *session.Store satisfies it.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Update(ctx context.Context, r *http.Request, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups the sign-in, second factor and sign-out handlers.
type Auth struct {
	renderer   *render.Renderer
	sessions   Sessions
	users      Users
	require2FA bool
	issuer     string
}

// NewAuth creates the auth handler group. With require2FA unset a correct
// password completes the sign-in; otherwise a TOTP code is also needed.
// issuer labels the entry in the operator's authenticator app.
func NewAuth(renderer *render.Renderer, sessions Sessions, users Users, require2FA bool, issuer string) *Auth {
	return &Auth{
		renderer:   renderer,
		sessions:   sessions,
		users:      users,
		require2FA: require2FA,
		issuer:     issuer,
	}
}

// LoginPage renders the sign-in form, or skips it for a signed-in operator.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "login", &render.PageData{Title: "Sign In"})
}

// LoginSubmit checks the credentials and opens a session.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := a.users.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		a.loginError(w, r, email, "An unexpected error occurred. Please try again.")
		return
	}
	if user == nil || !a.users.CheckPassword(user, password) {
		slog.Warn("login rejected", "email", email, "request_id", middleware.RequestIDFromCtx(r.Context()))
		a.loginError(w, r, email, loginFailed)
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:       user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Role:         string(user.Role),
		TwoFADone:    !a.require2FA,
		TOTPEnrolled: user.TOTPEnabled,
	})
	if err != nil {
		slog.Error("session create failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		a.loginError(w, r, email, "An unexpected error occurred. Please try again.")
		return
	}
	slog.Info("operator signed in", "email", user.Email)

	switch {
	case !a.require2FA:
		middleware.Redirect(w, r, "/admin/dashboard")
	case user.Needs2FASetup():
		middleware.Redirect(w, r, middleware.TwoFASetupPath)
	default:
		middleware.Redirect(w, r, middleware.TwoFAVerifyPath)
	}
}

func (a *Auth) loginError(w http.ResponseWriter, r *http.Request, email, msg string) {
	a.renderer.PageStatus(w, r, http.StatusUnprocessableEntity, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Error": msg, "Email": email},
	})
}

// TwoFASetupPage generates a fresh TOTP secret and shows it as a QR code.
// An account with a confirmed authenticator is sent to the code form; its
// secret is only replaced through an explicit reset.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa setup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user.TOTPEnabled {
		http.Redirect(w, r, middleware.TwoFAVerifyPath, http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      a.issuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := a.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderSetup(w, r, http.StatusOK, key, "")
}

// TwoFAVerifyPage renders the code form for operators already enrolled.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "2fa_verify", &render.PageData{Title: "Two-Factor Authentication"})
}

// TwoFAVerifySubmit checks the TOTP code. The first valid code after setup
// enables the second factor for the account.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user.TOTPSecret == nil {
		http.Redirect(w, r, middleware.TwoFASetupPath, http.StatusSeeOther)
		return
	}

	if !totp.Validate(strings.TrimSpace(r.FormValue("code")), *user.TOTPSecret) {
		const msg = "Invalid code. Please try again."
		if user.TOTPEnabled {
			a.renderer.PageStatus(w, r, http.StatusUnprocessableEntity, "2fa_verify", &render.PageData{
				Title: "Two-Factor Authentication",
				Data:  map[string]any{"Error": msg},
			})
			return
		}
		key, err := otp.NewKeyFromURL(a.keyURL(user.Email, *user.TOTPSecret))
		if err != nil {
			slog.Error("totp key rebuild failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		a.renderSetup(w, r, http.StatusUnprocessableEntity, key, msg)
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Logout destroys the session and returns to the sign-in form.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	middleware.Redirect(w, r, "/admin/login")
}

func (a *Auth) renderSetup(w http.ResponseWriter, r *http.Request, status int, key *otp.Key, msg string) {
	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data := map[string]any{
		"QRCode": base64.StdEncoding.EncodeToString(png),
		"Secret": key.Secret(),
	}
	if msg != "" {
		data["Error"] = msg
	}
	a.renderer.PageStatus(w, r, status, "2fa_setup", &render.PageData{
		Title: "Set Up Two-Factor Authentication",
		Data:  data,
	})
}

// keyURL rebuilds the otpauth URL for a stored secret in the layout
// totp.Generate produces.
func (a *Auth) keyURL(account, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", a.issuer)
	v.Set("period", "30")
	v.Set("algorithm", "SHA1")
	v.Set("digits", "6")
	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + a.issuer + ":" + account,
		RawQuery: v.Encode(),
	}
	return u.String()
}
