// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"
)

func TestRealIP(t *testing.T) {
	proxies := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name    string
		trusted []netip.Prefix
		remote  string
		headers map[string]string
		want    string
	}{
		{"no trusted proxies", nil, "192.0.2.1:1", map[string]string{"X-Forwarded-For": "198.51.100.7"}, "192.0.2.1"},
		{"untrusted peer", proxies, "192.0.2.1:1", map[string]string{"X-Forwarded-For": "198.51.100.7"}, "192.0.2.1"},
		{"untrusted peer x-real-ip", proxies, "192.0.2.1:1", map[string]string{"X-Real-IP": "198.51.100.8"}, "192.0.2.1"},
		{"trusted peer", proxies, "10.0.0.2:1", map[string]string{"X-Forwarded-For": "198.51.100.7"}, "198.51.100.7"},
		{"spoofed leftmost hop", proxies, "10.0.0.2:1", map[string]string{"X-Forwarded-For": "203.0.113.9, 198.51.100.7"}, "198.51.100.7"},
		{"trusted hops skipped", proxies, "10.0.0.2:1", map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.3"}, "198.51.100.7"},
		{"garbage hop", proxies, "10.0.0.2:1", map[string]string{"X-Forwarded-For": "198.51.100.7, nonsense"}, "10.0.0.2"},
		{"trusted peer x-real-ip", proxies, "10.0.0.2:1", map[string]string{"X-Real-IP": " 198.51.100.8 "}, "198.51.100.8"},
		{"trusted peer no headers", proxies, "10.0.0.2:1", nil, "10.0.0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := RealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = clientIP(r)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRealIPKeepsLimiterKeyedOnPeer(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	h := RealIP(nil)(rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	codes := []int{}
	for _, xff := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "192.0.2.1:1"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[1] != http.StatusTooManyRequests {
		t.Errorf("rotated X-Forwarded-For bypassed the limiter: %v", codes)
	}
}
