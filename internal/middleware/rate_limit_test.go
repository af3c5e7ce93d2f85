package middleware

import (
	"testing"
	"time"
)

func TestLocalLimiterWindow(t *testing.T) {
	limiter := newLocalLimiter(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if !limiter.allow("10.0.0.1", now) {
			t.Fatalf("request %d within the cap was blocked", i+1)
		}
	}

	if limiter.allow("10.0.0.1", now) {
		t.Error("request over the cap was allowed")
	}

	if !limiter.allow("10.0.0.2", now) {
		t.Error("limits must be tracked per client IP")
	}

	// The window slides: once the old hits age out, the IP may try again.
	later := now.Add(2 * time.Minute)
	if !limiter.allow("10.0.0.1", later) {
		t.Error("request after the window elapsed was blocked")
	}
}
