// ABOUTME: Tests for the request window limiter
// ABOUTME: Uses injected clock and sleep hooks to exercise budget exhaustion

package llm

import (
	"testing"
	"time"
)

func TestWindowLimiterBudget(t *testing.T) {
	tests := []struct {
		perMinute int
		want      int
	}{
		{30, 28},
		{3, 1},
		{1, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := newWindowLimiter(tt.perMinute).budget; got != tt.want {
			t.Errorf("newWindowLimiter(%d).budget = %d, want %d", tt.perMinute, got, tt.want)
		}
	}
}

func TestWindowLimiterPausesAtBudget(t *testing.T) {
	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	var slept []time.Duration

	limiter := newWindowLimiter(3) // budget of 1
	limiter.now = func() time.Time { return clock }
	limiter.sleep = func(d time.Duration) { slept = append(slept, d) }

	limiter.wait()
	if len(slept) != 0 {
		t.Fatalf("first call slept %v, want none", slept)
	}

	clock = base.Add(10 * time.Second)
	limiter.wait()
	if len(slept) != 1 {
		t.Fatalf("second call recorded %d sleeps, want 1", len(slept))
	}
	if want := 50 * time.Second; slept[0] != want {
		t.Errorf("slept %v, want the remaining %v of the window", slept[0], want)
	}
}

func TestWindowLimiterResetsAfterWindow(t *testing.T) {
	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	var slept []time.Duration

	limiter := newWindowLimiter(3)
	limiter.now = func() time.Time { return clock }
	limiter.sleep = func(d time.Duration) { slept = append(slept, d) }

	limiter.wait()
	clock = base.Add(61 * time.Second)
	limiter.wait()

	if len(slept) != 0 {
		t.Fatalf("expired window still slept %v", slept)
	}
}
