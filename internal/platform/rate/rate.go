// Package rate wraps golang.org/x/time/rate with the two shapes movielinks
// needs: a single limiter for outbound API calls and a per-client limiter
// set for the HTTP endpoint.
package rate

import (
	"context"
	"sync"
	"time"

	xrate "golang.org/x/time/rate"
)

// Limiter is a token bucket. It supports both blocking (Wait) and
// non-blocking (Allow) modes.
type Limiter struct {
	lim *xrate.Limiter
}

// New creates a limiter allowing rps operations per second with the given
// burst. Non-positive values fall back to 1.
//
// Example:
//
//	limiter := rate.New(10, 5) // 10 req/s, burst of 5
func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{lim: xrate.NewLimiter(xrate.Limit(rps), burst)}
}

// Wait blocks until a token is available or ctx is done. It fails early
// when the wait would outlast the context deadline.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// Allow reports whether an operation can proceed now, consuming a token
// if so.
func (l *Limiter) Allow() bool {
	return l.lim.Allow()
}

// AllowN is Allow for n tokens at once.
func (l *Limiter) AllowN(n int) bool {
	return l.lim.AllowN(time.Now(), n)
}

// SetRate changes the refill rate. Non-positive values fall back to 1.
func (l *Limiter) SetRate(rps float64) {
	if rps <= 0 {
		rps = 1
	}
	l.lim.SetLimit(xrate.Limit(rps))
}

// SetBurst changes the bucket size. Non-positive values fall back to 1.
func (l *Limiter) SetBurst(burst int) {
	if burst <= 0 {
		burst = 1
	}
	l.lim.SetBurst(burst)
}

// Tokens returns the tokens currently available.
func (l *Limiter) Tokens() float64 {
	return l.lim.Tokens()
}

// Rate returns the refill rate in tokens per second.
func (l *Limiter) Rate() float64 {
	return float64(l.lim.Limit())
}

// Burst returns the bucket size.
func (l *Limiter) Burst() int {
	return l.lim.Burst()
}

// KeyedLimiter keeps one Limiter per key (client IP). Keys idle for longer
// than the idle window are dropped by Sweep.
type KeyedLimiter struct {
	rps   float64
	burst int
	idle  time.Duration

	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	lim      *Limiter
	lastSeen time.Time
}

// DefaultIdle is how long an unused key is kept.
const DefaultIdle = 10 * time.Minute

// NewKeyed creates a KeyedLimiter where every key gets rps/burst.
func NewKeyed(rps float64, burst int, idle time.Duration) *KeyedLimiter {
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &KeyedLimiter{
		rps:     rps,
		burst:   burst,
		idle:    idle,
		entries: make(map[string]*keyedEntry),
	}
}

// Allow reports whether key may proceed now.
func (k *KeyedLimiter) Allow(key string) bool {
	return k.get(key).Allow()
}

func (k *KeyedLimiter) get(key string) *Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[key]
	if !ok {
		e = &keyedEntry{lim: New(k.rps, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.lim
}

// Len returns the number of tracked keys.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// Sweep drops keys not seen since the idle window and returns how many
// were removed.
func (k *KeyedLimiter) Sweep() int {
	cutoff := time.Now().Add(-k.idle)

	k.mu.Lock()
	defer k.mu.Unlock()

	removed := 0
	for key, e := range k.entries {
		if e.lastSeen.Before(cutoff) {
			delete(k.entries, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (k *KeyedLimiter) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = k.idle
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				k.Sweep()
			}
		}
	}()
}
