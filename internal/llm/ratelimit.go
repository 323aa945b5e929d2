// ABOUTME: In-process request budget for the Groq per-minute rate limit
// ABOUTME: Pauses before the provider would start rejecting calls
package llm

import "time"

// windowLimiter counts calls inside a rolling window and blocks once the
// budget is spent, sleeping until the window resets. Not safe for concurrent
// use; the client serializes calls through it.
type windowLimiter struct {
	budget      int
	window      time.Duration
	count       int
	windowStart time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// newWindowLimiter builds a limiter that pauses two calls short of the
// provider limit, leaving headroom for requests already in flight.
func newWindowLimiter(perMinute int) *windowLimiter {
	budget := perMinute - 2
	if budget < 1 {
		budget = 1
	}
	return &windowLimiter{
		budget: budget,
		window: time.Minute,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// wait blocks until the next call fits the budget, then records it.
func (l *windowLimiter) wait() {
	current := l.now()

	if current.Sub(l.windowStart) > l.window {
		l.count = 0
		l.windowStart = current
	}

	if l.count >= l.budget {
		remaining := l.window - current.Sub(l.windowStart)
		if remaining > 0 {
			l.sleep(remaining)
			l.count = 0
			l.windowStart = l.now()
		}
	}

	l.count++
}
