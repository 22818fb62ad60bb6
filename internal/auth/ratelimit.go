package auth

import (
	"sync"
	"time"

	"github.com/mrlokans/bookshelf/internal/config"
)

// LoginAttempt identifies who is trying to log in and from where.
// Failures are counted per attempt key, so one locked username does not
// block the same name from another address.
type LoginAttempt struct {
	IP       string
	Username string
}

// RateLimitConfig tunes the login limiter. Zero fields take the defaults.
type RateLimitConfig struct {
	MaxAttempts     int
	WindowDuration  time.Duration
	LockoutDuration time.Duration
	CleanupInterval time.Duration
}

// DefaultRateLimitConfig allows 5 failures per 15 minutes, then locks for 30.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxAttempts:     5,
		WindowDuration:  15 * time.Minute,
		LockoutDuration: 30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// RateLimitConfigFrom overlays the configured auth limits on the defaults.
func RateLimitConfigFrom(cfg config.Auth) RateLimitConfig {
	return RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	}.withDefaults()
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	d := DefaultRateLimitConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.WindowDuration <= 0 {
		c.WindowDuration = d.WindowDuration
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = d.LockoutDuration
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	return c
}

type failures struct {
	count       int
	windowStart time.Time
	lockedUntil time.Time
}

func (f *failures) lockedAt(now time.Time) bool {
	return now.Before(f.lockedUntil)
}

// RateLimiter counts failed basic-auth logins and locks out a LoginAttempt
// once it fails MaxAttempts times inside one window.
type RateLimiter struct {
	cfg  RateLimitConfig
	now  func() time.Time
	stop chan struct{}

	mu       sync.Mutex
	failures map[LoginAttempt]*failures
}

// NewRateLimiter starts a limiter with a background sweep of stale entries.
// Call Stop when done.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		cfg:      cfg.withDefaults(),
		now:      time.Now,
		stop:     make(chan struct{}),
		failures: make(map[LoginAttempt]*failures),
	}
	go rl.sweepLoop()
	return rl
}

func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Check reports whether attempt may try its credentials. When it may not,
// retryAfter is the time left on the lockout.
func (rl *RateLimiter) Check(attempt LoginAttempt) (retryAfter time.Duration, ok bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	f, exists := rl.failures[attempt]
	if !exists {
		return 0, true
	}
	if f.lockedAt(now) {
		return f.lockedUntil.Sub(now), false
	}
	return 0, true
}

// Fail records a rejected login and returns the lockout it triggered, or 0.
func (rl *RateLimiter) Fail(attempt LoginAttempt) time.Duration {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	f, exists := rl.failures[attempt]
	if !exists || now.Sub(f.windowStart) > rl.cfg.WindowDuration {
		f = &failures{windowStart: now}
		rl.failures[attempt] = f
	}

	f.count++
	if f.count < rl.cfg.MaxAttempts {
		return 0
	}
	f.lockedUntil = now.Add(rl.cfg.LockoutDuration)
	return rl.cfg.LockoutDuration
}

// Succeed forgets the failures of attempt.
func (rl *RateLimiter) Succeed(attempt LoginAttempt) {
	rl.mu.Lock()
	delete(rl.failures, attempt)
	rl.mu.Unlock()
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// sweep drops entries whose window has passed and that are not locked.
func (rl *RateLimiter) sweep() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for attempt, f := range rl.failures {
		if now.Sub(f.windowStart) > rl.cfg.WindowDuration && !f.lockedAt(now) {
			delete(rl.failures, attempt)
		}
	}
}
