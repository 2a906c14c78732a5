// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"surafit/internal/gateway"
)

func publicRequest(method, target string, form url.Values) *http.Request {
	var r *http.Request
	if form != nil {
		r = httptest.NewRequest(method, target, formBody(form))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r
}

func withSlug(r *http.Request, slug string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHomeUsesPlaceholdersWhenEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Public.Home(rec, publicRequest(http.MethodGet, "/", nil))

	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assertContains(t, body, "Limited Time Offer")
	assertContains(t, body, "Personalized Training")
	assertContains(t, body, "Digital Support")
	assertNotContains(t, body, "Group Classes")
	assertContains(t, body, "Meera Sharma")
	assertContains(t, body, "Priya")
	assertContains(t, body, `id="lead-form"`)
	assertNotContains(t, body, "/admin/dashboard")
}

func TestHomeUsesPlaceholdersOnReadFailure(t *testing.T) {
	env := newTestEnv(t)
	for _, table := range []string{"offers", "programs", "testimonials", "transformations", "success_stories"} {
		env.Memory.Fail("select", table, &gateway.Error{Message: "connection reset"})
	}

	rec := httptest.NewRecorder()
	env.Public.Home(rec, publicRequest(http.MethodGet, "/", nil))

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Limited Time Offer")
	assertContains(t, rec.Body.String(), "Meera Sharma")
}

// memoryPages is an in-process PageStore.
type memoryPages struct{ pages map[string][]byte }

func (m *memoryPages) Get(_ context.Context, key string) ([]byte, bool) {
	b, ok := m.pages[key]
	return b, ok
}

func (m *memoryPages) Set(_ context.Context, key string, html []byte) {
	m.pages[key] = html
}

func TestPlaceholderPageAfterReadFailureIsNotCached(t *testing.T) {
	env := newTestEnv(t)
	pages := &memoryPages{pages: map[string][]byte{}}
	env.Public.pageCache = pages
	env.Memory.Fail("select", "offers", &gateway.Error{Message: "connection reset"})

	rec := httptest.NewRecorder()
	env.Public.Offers(rec, publicRequest(http.MethodGet, "/offers", nil))
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Limited Time Offer")
	if len(pages.pages) != 0 {
		t.Fatalf("placeholder page was cached: %v", len(pages.pages))
	}

	env.Memory.Fail("select", "offers", nil)
	seedOffer(env, "Diwali Transformation")

	rec = httptest.NewRecorder()
	env.Public.Offers(rec, publicRequest(http.MethodGet, "/offers", nil))
	assertContains(t, rec.Body.String(), "Diwali Transformation")
	if len(pages.pages) != 1 {
		t.Errorf("healthy page should be cached, got %d entries", len(pages.pages))
	}
}

func TestHomeShowsStoredContent(t *testing.T) {
	env := newTestEnv(t)
	seedOffer(env, "Diwali Transformation")
	env.Memory.Seed("offers", gateway.Values{"title": "Old Offer", "description": "gone", "is_active": false})
	env.Memory.Seed("testimonials", gateway.Values{"name": "Kavya Nair", "role": "Teacher", "content": "Lost 8kg", "rating": int64(5), "avatar": "🏃"})

	rec := httptest.NewRecorder()
	env.Public.Home(rec, publicRequest(http.MethodGet, "/", nil))

	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assertContains(t, body, "Diwali Transformation")
	assertNotContains(t, body, "Old Offer")
	assertNotContains(t, body, "Limited Time Offer")
	assertContains(t, body, "Kavya Nair")
	assertNotContains(t, body, "Meera Sharma")
}

func TestHomeShowsAdminLinkForOperators(t *testing.T) {
	env := newTestEnv(t)

	r := publicRequest(http.MethodGet, "/", nil)
	r = r.WithContext(ctxWithSession(r.Context(), testSession("admin", true)))
	rec := httptest.NewRecorder()
	env.Public.Home(rec, r)

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), `href="/admin/dashboard"`)
}

func TestOffersListsOnlyActive(t *testing.T) {
	env := newTestEnv(t)
	seedOffer(env, "Summer Shred")
	env.Memory.Seed("offers", gateway.Values{"title": "Expired Deal", "description": "x", "is_active": false})

	rec := httptest.NewRecorder()
	env.Public.Offers(rec, publicRequest(http.MethodGet, "/offers", nil))

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Summer Shred")
	assertNotContains(t, rec.Body.String(), "Expired Deal")
	assertContains(t, rec.Body.String(), "https://wa.me/918840723476?text=")
}

func TestOffersFallback(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Public.Offers(rec, publicRequest(http.MethodGet, "/offers", nil))

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Limited Time Offer")
}

func seedBlog(env *testEnv, title, slug, status, content string, day int) {
	env.Memory.Seed("blogs", gateway.Values{
		"title":     title,
		"slug":      slug,
		"excerpt":   "About " + title,
		"content":   content,
		"author":    "Coach Sura",
		"read_time": "4 min read",
		"status":    status,
		"date":      time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC),
	})
}

func TestBlogListsPublishedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	seedBlog(env, "Older Post", "older-post", "Published", "", 1)
	seedBlog(env, "Newer Post", "newer-post", "Published", "", 20)
	seedBlog(env, "Secret Draft", "secret-draft", "Draft", "", 25)

	rec := httptest.NewRecorder()
	env.Public.Blog(rec, publicRequest(http.MethodGet, "/blog", nil))

	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assertNotContains(t, body, "Secret Draft")
	newer, older := strings.Index(body, "Newer Post"), strings.Index(body, "Older Post")
	if newer < 0 || older < 0 || newer > older {
		t.Errorf("expected newest first: newer at %d, older at %d", newer, older)
	}
	assertContains(t, body, `href="/blog/newer-post"`)
}

func TestBlogFallbackWhenNothingPublished(t *testing.T) {
	env := newTestEnv(t)
	seedBlog(env, "Secret Draft", "secret-draft", "Draft", "", 25)

	rec := httptest.NewRecorder()
	env.Public.Blog(rec, publicRequest(http.MethodGet, "/blog", nil))

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "5 Habits That Make Fat Loss Stick")
	assertNotContains(t, rec.Body.String(), "Secret Draft")
}

func TestBlogPostRendersMarkdown(t *testing.T) {
	env := newTestEnv(t)
	seedBlog(env, "Protein Basics", "protein-basics", "Published", "## Why protein\n\nEat **dal** daily.", 5)

	rec := httptest.NewRecorder()
	env.Public.BlogPost(rec, withSlug(publicRequest(http.MethodGet, "/blog/protein-basics", nil), "protein-basics"))

	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assertContains(t, body, "Protein Basics")
	assertContains(t, body, "<strong>dal</strong>")
	assertContains(t, body, "By Coach Sura")
}

func TestBlogPostNotFound(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{"unknown slug", "nope"},
		{"draft", "secret-draft"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			seedBlog(env, "Secret Draft", "secret-draft", "Draft", "unreleased training plan", 25)

			rec := httptest.NewRecorder()
			env.Public.BlogPost(rec, withSlug(publicRequest(http.MethodGet, "/blog/"+tt.slug, nil), tt.slug))

			assertStatus(t, rec, http.StatusNotFound)
			assertContains(t, rec.Body.String(), "Page not found")
			assertNotContains(t, rec.Body.String(), "unreleased training plan")
		})
	}
}

func TestTestimonialsAndProgramsFallback(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Public.Testimonials(rec, publicRequest(http.MethodGet, "/testimonials", nil))
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Rohit Kumar")

	rec = httptest.NewRecorder()
	env.Public.Programs(rec, publicRequest(http.MethodGet, "/programs", nil))
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), "Group Classes")
	assertContains(t, rec.Body.String(), "Progress Tracking")
}

func TestStaticPages(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Public.Policy(rec, publicRequest(http.MethodGet, "/policy", nil))
	assertStatus(t, rec, http.StatusOK)

	rec = httptest.NewRecorder()
	env.Public.Contact(rec, publicRequest(http.MethodGet, "/contact", nil))
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec.Body.String(), `id="lead-form"`)

	rec = httptest.NewRecorder()
	env.Public.NotFound(rec, publicRequest(http.MethodGet, "/missing", nil))
	assertStatus(t, rec, http.StatusNotFound)
}

func TestSubmitLeadSuccess(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"name": {" Ravi "}, "phone": {"+91 98765-43210"}, "message": {"Want to get stronger"}}
	rec := httptest.NewRecorder()
	env.Public.SubmitLead(rec, htmx(publicRequest(http.MethodPost, "/leads", form)))

	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assertContains(t, body, "Thanks, Ravi! We will reach out on WhatsApp shortly.")
	assertNotContains(t, body, "<html")

	rows := env.Memory.Rows("leads")
	if len(rows) != 1 {
		t.Fatalf("leads: got %d, want 1", len(rows))
	}
	if rows[0].String("name") != "Ravi" || rows[0].String("status") != "New" {
		t.Errorf("lead: %v", rows[0])
	}
}

func TestSubmitLeadValidation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing name", url.Values{"phone": {"9876543210"}}, "Please tell us your name."},
		{"missing phone", url.Values{"name": {"Ravi"}}, "Please enter your phone number."},
		{"bad phone", url.Values{"name": {"Ravi"}, "phone": {"call me"}}, "Please enter a valid phone number"},
		{"long message", url.Values{"name": {"Ravi"}, "phone": {"9876543210"}, "message": {strings.Repeat("a", 1001)}}, "Message is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := httptest.NewRecorder()
			env.Public.SubmitLead(rec, htmx(publicRequest(http.MethodPost, "/leads", tt.form)))

			assertStatus(t, rec, http.StatusUnprocessableEntity)
			assertContains(t, rec.Body.String(), tt.want)
			if n := env.Memory.Calls("insert", "leads"); n != 0 {
				t.Errorf("insert calls: got %d, want 0", n)
			}
		})
	}
}

func TestSubmitLeadKeepsInputOnError(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"name": {"Ravi"}, "phone": {"12"}, "message": {"Hello coach"}}
	rec := httptest.NewRecorder()
	env.Public.SubmitLead(rec, htmx(publicRequest(http.MethodPost, "/leads", form)))

	assertStatus(t, rec, http.StatusUnprocessableEntity)
	body := rec.Body.String()
	assertContains(t, body, `value="Ravi"`)
	assertContains(t, body, "Hello coach")
}

func TestSubmitLeadBackendFailure(t *testing.T) {
	env := newTestEnv(t)
	env.Memory.Fail("insert", "leads", &gateway.Error{Code: "42501", Message: "permission denied"})

	form := url.Values{"name": {"Ravi"}, "phone": {"9876543210"}}
	rec := httptest.NewRecorder()
	env.Public.SubmitLead(rec, htmx(publicRequest(http.MethodPost, "/leads", form)))

	assertStatus(t, rec, http.StatusUnprocessableEntity)
	assertContains(t, rec.Body.String(), "We could not save your details.")
}

func TestSubmitLeadPlainForm(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"name": {"Ravi"}, "phone": {"9876543210"}}
	rec := httptest.NewRecorder()
	env.Public.SubmitLead(rec, publicRequest(http.MethodPost, "/leads", form))

	assertStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assertContains(t, body, "<html")
	assertContains(t, body, "Thanks, Ravi!")
}

func TestLeadLimited(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Public.LeadLimited(rec, htmx(publicRequest(http.MethodPost, "/leads", url.Values{"name": {"Ravi"}})))

	assertStatus(t, rec, http.StatusTooManyRequests)
	assertContains(t, rec.Body.String(), "Too many submissions.")
	assertContains(t, rec.Body.String(), `value="Ravi"`)
}
