package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name              string
		requestsPerSecond float64
		wantAllowed       int
	}{
		{name: "unlimited_zero", requestsPerSecond: 0, wantAllowed: 100},
		{name: "unlimited_negative", requestsPerSecond: -1, wantAllowed: 100},
		{name: "limited_one_per_second", requestsPerSecond: 1, wantAllowed: 1},
		{name: "limited_fractional", requestsPerSecond: 0.5, wantAllowed: 1},
		{name: "burst_follows_rate", requestsPerSecond: 3, wantAllowed: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := New(tt.requestsPerSecond)
			if limiter == nil {
				t.Fatal("New() returned nil")
			}

			allowed := 0
			for i := 0; i < 100; i++ {
				if limiter.Allow() {
					allowed++
				}
			}
			if allowed != tt.wantAllowed {
				t.Errorf("allowed %d immediate requests, want %d", allowed, tt.wantAllowed)
			}
		})
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := New(1)

	if !limiter.Allow() {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow() {
		t.Error("second immediate request should be throttled")
	}

	unlimited := New(0)
	for i := 0; i < 100; i++ {
		if !unlimited.Allow() {
			t.Fatalf("unlimited limiter rejected request %d", i)
		}
	}
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rejected := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	handler := Middleware(New(1), rejected)(next)

	want := []int{http.StatusOK, http.StatusTooManyRequests}
	for i, status := range want {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != status {
			t.Errorf("request %d: status = %d, want %d", i, rec.Code, status)
		}
	}
}
