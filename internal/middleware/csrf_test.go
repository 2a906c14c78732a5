// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// issueToken runs a GET through the middleware and returns the minted cookie.
func issueToken(t *testing.T, secure bool) *http.Cookie {
	t.Helper()
	h := NewCSRF(secure)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

	for _, c := range rr.Result().Cookies() {
		if c.Name == CSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func TestCSRFIssuesToken(t *testing.T) {
	c := issueToken(t, true)
	if len(c.Value) != csrfTokenLength*2 {
		t.Errorf("token length: got %d", len(c.Value))
	}
	if !c.Secure || !c.HttpOnly {
		t.Errorf("cookie flags: Secure=%v HttpOnly=%v", c.Secure, c.HttpOnly)
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Errorf("SameSite: got %v", c.SameSite)
	}
}

func TestCSRFTokenInContext(t *testing.T) {
	c := issueToken(t, false)

	var got string
	h := NewCSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CSRFTokenFromCtx(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(c)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got != c.Value {
		t.Errorf("context token: got %q, want %q", got, c.Value)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Error("an existing valid cookie should not be reissued")
	}
}

func TestCSRFValidation(t *testing.T) {
	c := issueToken(t, false)

	tests := []struct {
		name   string
		method string
		header string
		form   string
		want   int
	}{
		{"GET is exempt", http.MethodGet, "", "", http.StatusOK},
		{"POST with header", http.MethodPost, c.Value, "", http.StatusOK},
		{"POST with form field", http.MethodPost, "", c.Value, http.StatusOK},
		{"PUT with header", http.MethodPut, c.Value, "", http.StatusOK},
		{"DELETE with header", http.MethodDelete, c.Value, "", http.StatusOK},
		{"POST without token", http.MethodPost, "", "", http.StatusForbidden},
		{"POST with wrong token", http.MethodPost, "deadbeef", "", http.StatusForbidden},
		{"DELETE without token", http.MethodDelete, "", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := okHandler()
			var body *strings.Reader
			if tt.form != "" {
				body = strings.NewReader(url.Values{CSRFFormField: {tt.form}}.Encode())
			} else {
				body = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, "/admin/blogs", body)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(c)
			if tt.header != "" {
				req.Header.Set(CSRFHeaderName, tt.header)
			}

			rr := httptest.NewRecorder()
			NewCSRF(false)(next).ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestCSRFFreshVisitorCannotPost(t *testing.T) {
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(""))
	req.Header.Set(CSRFHeaderName, "forged")
	rr := httptest.NewRecorder()
	NewCSRF(false)(next).ServeHTTP(rr, req)

	if *called || rr.Code != http.StatusForbidden {
		t.Errorf("called=%v status=%d", *called, rr.Code)
	}
}
