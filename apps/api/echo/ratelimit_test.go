package echoapi

import (
	"testing"
	"time"
)

func TestLimiterStore_AllowAndCleanup(t *testing.T) {
	// allow 5 events immediately then the 6th should be rejected
	s := NewLimiterStore(5, 5, 100*time.Millisecond)
	defer s.Stop()

	key := "sender-1"
	for i := 0; i < 5; i++ {
		if !s.Allow(key) {
			t.Fatalf("expected allow at iteration %d", i)
		}
	}

	if s.Allow(key) {
		t.Fatal("expected limiter to block after burst consumed")
	}

	// an independent sender is not affected
	if !s.Allow("sender-2") {
		t.Fatal("expected allow for a different sender")
	}
}

func TestLimiterStore_DefaultsOnBadLimit(t *testing.T) {
	s := NewLimiterStore(0, 1, time.Minute)
	defer s.Stop()

	if !s.Allow("k") {
		t.Fatal("expected allow with default limit")
	}
}
