// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// captureLogs routes the default slog logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogger(t *testing.T) {
	t.Run("records status and path", func(t *testing.T) {
		buf := captureLogs(t)
		h := RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blog/missing", nil))

		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
		out := buf.String()
		for _, want := range []string{`"path":"/blog/missing"`, `"status":404`, `"request_id":"`} {
			if !strings.Contains(out, want) {
				t.Errorf("log line missing %s: %s", want, out)
			}
		}
	})

	t.Run("implicit 200 and byte count", func(t *testing.T) {
		buf := captureLogs(t)
		h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("hello"))
		}))

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d", rr.Code)
		}
		if !strings.Contains(buf.String(), `"bytes":5`) {
			t.Errorf("expected byte count in log: %s", buf.String())
		}
	})

	t.Run("server errors log at error level", func(t *testing.T) {
		buf := captureLogs(t)
		h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if !strings.Contains(buf.String(), `"level":"ERROR"`) {
			t.Errorf("expected ERROR level: %s", buf.String())
		}
	})
}

func TestRequestID(t *testing.T) {
	t.Run("mints an id", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFromCtx(r.Context())
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" {
			t.Fatal("no request id in context")
		}
		if rr.Header().Get(RequestIDHeader) != seen {
			t.Errorf("header %q does not match context %q", rr.Header().Get(RequestIDHeader), seen)
		}
	})

	t.Run("reuses inbound id", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFromCtx(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "edge-123")
		h.ServeHTTP(httptest.NewRecorder(), req)

		if seen != "edge-123" {
			t.Errorf("got %q, want edge-123", seen)
		}
	})

	t.Run("replaces oversized inbound id", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFromCtx(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 65))
		h.ServeHTTP(httptest.NewRecorder(), req)

		if len(seen) != 36 {
			t.Errorf("expected a fresh UUID, got %q", seen)
		}
	})
}
