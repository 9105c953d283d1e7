package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowWithinBurst(t *testing.T) {
	current := time.Unix(0, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", rule)
		if !allowed {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}

	allowed, retryAfter := limiter.Allow("10.0.0.1", rule)
	if allowed {
		t.Fatalf("request beyond burst should be limited")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}
}

func TestRateLimiterRefill(t *testing.T) {
	current := time.Unix(0, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("10.0.0.2", rule); !allowed {
		t.Fatalf("first request should pass")
	}
	if allowed, _ := limiter.Allow("10.0.0.2", rule); allowed {
		t.Fatalf("second immediate request should be limited")
	}

	current = current.Add(2 * time.Second)
	if allowed, _ := limiter.Allow("10.0.0.2", rule); !allowed {
		t.Fatalf("request after refill should pass")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	current := time.Unix(0, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("10.0.0.3", rule); !allowed {
		t.Fatalf("first client should pass")
	}
	if allowed, _ := limiter.Allow("10.0.0.4", rule); !allowed {
		t.Fatalf("second client should pass independently")
	}
}
