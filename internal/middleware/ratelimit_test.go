package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenBucketBurst(t *testing.T) {
	tb := NewTokenBucket(3, 1)

	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d within burst denied", i+1)
		}
	}
	if tb.Allow() {
		t.Error("request beyond burst allowed")
	}
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request for key denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request for same key allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other key affected by exhausted bucket")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := RateLimitMiddleware(1, 1)(next)

	req := httptest.NewRequest(http.MethodPost, "/analyze_logs", nil)
	req.RemoteAddr = "203.0.113.9:51000"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After")
	}

	// probes bypass the limiter
	probe := httptest.NewRequest(http.MethodGet, "/health", nil)
	probe.RemoteAddr = "203.0.113.9:51000"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, probe)
	if w.Code != http.StatusOK {
		t.Errorf("health probe status = %d", w.Code)
	}
}
