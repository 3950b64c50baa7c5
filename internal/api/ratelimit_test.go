package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestIPRateLimiterAllow tests per-IP token bucket behavior
func TestIPRateLimiterAllow(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             2,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	if !rl.Allow("1.2.3.4") {
		t.Error("First request should be allowed")
	}
	if !rl.Allow("1.2.3.4") {
		t.Error("Burst should cover the second request")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("Third immediate request should be rejected")
	}

	// Other IPs get their own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Error("A different IP should not share the exhausted bucket")
	}

	stats := rl.GetStats()
	if stats["allowed"] != 3 || stats["rejected"] != 1 {
		t.Errorf("Unexpected stats %v", stats)
	}
}

// TestRateLimitMiddleware tests the HTTP 429 path
func TestRateLimitMiddleware(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response should carry Retry-After")
	}
}

// TestGetClientIP tests proxy header precedence
func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	if ip := GetClientIP(req); ip != "10.0.0.1" {
		t.Errorf("Expected RemoteAddr host, got %q", ip)
	}

	req.Header.Set("X-Real-IP", "2.2.2.2")
	if ip := GetClientIP(req); ip != "2.2.2.2" {
		t.Errorf("Expected X-Real-IP, got %q", ip)
	}

	req.Header.Set("X-Forwarded-For", "3.3.3.3, 4.4.4.4")
	if ip := GetClientIP(req); ip != "3.3.3.3" {
		t.Errorf("Expected first X-Forwarded-For entry, got %q", ip)
	}
}

// TestWebSocketRateLimiter tests the per-IP concurrent connection cap
func TestWebSocketRateLimiter(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("1.1.1.1") || !wrl.Allow("1.1.1.1") {
		t.Fatal("First two connections should be allowed")
	}
	if wrl.Allow("1.1.1.1") {
		t.Error("Third concurrent connection should be rejected")
	}

	wrl.Release("1.1.1.1")
	if !wrl.Allow("1.1.1.1") {
		t.Error("Released slot should be reusable")
	}

	if wrl.GetConnectionCount("1.1.1.1") != 2 {
		t.Errorf("Expected 2 connections, got %d", wrl.GetConnectionCount("1.1.1.1"))
	}
}

// TestIsAllowedOrigin tests origin screening
func TestIsAllowedOrigin(t *testing.T) {
	cases := []struct {
		origin string
		want   bool
	}{
		{"", true}, // non-browser clients
		{"http://localhost:3000", true},
		{"http://localhost:9999", true},
		{"http://127.0.0.1:5173", true},
		{"https://evil.example.com", false},
	}
	for _, c := range cases {
		if got := IsAllowedOrigin(c.origin); got != c.want {
			t.Errorf("IsAllowedOrigin(%q) = %v, want %v", c.origin, got, c.want)
		}
	}
}
