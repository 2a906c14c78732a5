// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every handler runs against the in-memory gateway, so no PostgreSQL or
// Valkey is needed.
package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"surafit/internal/crud"
	"surafit/internal/gateway/gatewaytest"
	"surafit/internal/handoff"
	"surafit/internal/middleware"
	"surafit/internal/models"
	"surafit/internal/render"
	"surafit/internal/session"
	"surafit/internal/stats"
	"surafit/internal/store"
	"surafit/internal/validation"
)

// fakeUsers is an in-memory account store.
type fakeUsers struct {
	byEmail map[string]*models.User
	err     error
	enabled []uuid.UUID
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*models.User{}}
}

func (f *fakeUsers) add(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Coach " + strings.Split(email, "@")[0],
		Role:         role,
	}
	f.byEmail[email] = u
	return u
}

func (f *fakeUsers) FindByEmail(email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}

func (f *fakeUsers) FindByID(id uuid.UUID) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (f *fakeUsers) SetTOTPSecret(userID uuid.UUID, secret string) error {
	u, _ := f.FindByID(userID)
	if u != nil {
		u.TOTPSecret = &secret
	}
	return nil
}

func (f *fakeUsers) List() ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	users := make([]models.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (f *fakeUsers) ResetTOTP(userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	u, _ := f.FindByID(userID)
	if u != nil {
		u.TOTPSecret = nil
		u.TOTPEnabled = false
	}
	return nil
}

func (f *fakeUsers) EnableTOTP(userID uuid.UUID) error {
	u, _ := f.FindByID(userID)
	if u != nil {
		u.TOTPEnabled = true
	}
	f.enabled = append(f.enabled, userID)
	return nil
}

// fakeSessions records the principal the handlers create or update.
type fakeSessions struct {
	created   *session.Data
	updated   *session.Data
	destroyed bool
	err       error
}

func (f *fakeSessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = data
	http.SetCookie(w, &http.Cookie{Name: "surafit_session", Value: "test-session"})
	return "test-session", nil
}

func (f *fakeSessions) Update(_ context.Context, _ *http.Request, data *session.Data) error {
	f.updated = data
	return f.err
}

func (f *fakeSessions) Destroy(_ context.Context, _ http.ResponseWriter, _ *http.Request) error {
	f.destroyed = true
	return nil
}

// fakeUploader stores objects in memory and returns a predictable URL.
type fakeUploader struct {
	keys  []string
	types []string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.types = append(f.types, contentType)
	return "https://cdn.test/" + key, nil
}

// fakePurger counts page cache purges.
type fakePurger struct{ purged int }

func (f *fakePurger) InvalidateAll(context.Context) { f.purged++ }

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	Memory   *gatewaytest.Memory
	Renderer *render.Renderer
	Users    *fakeUsers
	Sessions *fakeSessions
	Uploads  *fakeUploader
	Pages    *fakePurger
	Admin    *Admin
	Auth     *Auth
	Public   *Public
}

// newTestEnv wires every handler group over a fresh in-memory backend.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	renderer, err := render.New(true, render.Site{Name: "Sura Fitness", WhatsApp: handoff.New("918840723476")})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	m := gatewaytest.New()
	m.Unique("blogs", "slug")
	v := validation.New()
	ctl := crud.NewController(m, v)
	ctl.SetClock(func() time.Time { return time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC) })

	env := &testEnv{
		Memory:   m,
		Renderer: renderer,
		Users:    newFakeUsers(),
		Sessions: &fakeSessions{},
		Uploads:  &fakeUploader{},
		Pages:    &fakePurger{},
	}
	leads := store.NewLeadStore(m)
	env.Admin = NewAdmin(renderer, ctl, stats.NewService(m), leads, env.Users, env.Pages, env.Uploads)
	env.Auth = NewAuth(renderer, env.Sessions, env.Users, false, "Sura Fitness")
	env.Public = NewPublic(renderer, store.NewSiteStore(m), leads, nil, v)
	return env
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "coach@surafit.local",
		DisplayName: "Test Coach",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// adminRequest builds a signed-in request with chi URL params given as
// key, value pairs.
func adminRequest(method, target string, body io.Reader, params ...string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = ctxWithSession(ctx, testSession("admin", true))
	return r.WithContext(ctx)
}

// formBody encodes form values for a POST body.
func formBody(values url.Values) io.Reader {
	return strings.NewReader(values.Encode())
}

// htmx marks r as an HTMX request.
func htmx(r *http.Request) *http.Request {
	r.Header.Set("HX-Request", "true")
	return r
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d\nbody: %s", rec.Code, want, rec.Body.String())
	}
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body does not contain %q", want)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Errorf("body unexpectedly contains %q", unwanted)
	}
}
