package ratelimiter

import (
	"testing"
	"time"
)

func TestFixedWindow(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewFixedWindowLimiter(2, 5*time.Second)
	rl.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		if ok, _ := rl.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	ok, wait := rl.Allow("1.2.3.4")
	if ok || wait != 5*time.Second {
		t.Fatalf("expected block for 5s, got %v %v", ok, wait)
	}
	if ok, _ := rl.Allow("5.6.7.8"); !ok {
		t.Fatalf("other client should pass")
	}

	clock = clock.Add(5 * time.Second)
	if ok, _ := rl.Allow("1.2.3.4"); !ok {
		t.Fatalf("new window should pass")
	}

	clock = clock.Add(10 * time.Second)
	rl.sweep()
	if len(rl.clients) != 0 {
		t.Fatalf("expected expired windows to be swept, got %d", len(rl.clients))
	}
}
