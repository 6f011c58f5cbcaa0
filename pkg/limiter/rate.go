package limiter

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/pkg/timeutil"
)

// RateLimiter keeps requests to the same host apart.
// Responsibilities:
// - Bookkeep each hostname's last fetch timestamp
// - Compute the remaining delay for a hostname from base delay and jitter
// - Block the caller until the host may be contacted again
type RateLimiter interface {
	SetBaseDelay(baseDelay time.Duration)
	SetJitter(jitter time.Duration)
	SetRandomSeed(randomSeed int64)
	MarkLastFetchAsNow(host string)
	ResolveDelay(host string) time.Duration
	Wait(ctx context.Context, host string) error
}

type HostRateLimiter struct {
	mu          sync.Mutex
	baseDelay   time.Duration
	jitter      time.Duration
	lastFetchAt map[string]time.Time
	rng         *rand.Rand
	now         func() time.Time
}

func NewHostRateLimiter() *HostRateLimiter {
	return &HostRateLimiter{
		lastFetchAt: make(map[string]time.Time),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

func (r *HostRateLimiter) SetBaseDelay(baseDelay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baseDelay = baseDelay
}

func (r *HostRateLimiter) SetJitter(jitter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jitter = jitter
}

func (r *HostRateLimiter) SetRandomSeed(randomSeed int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng = rand.New(rand.NewSource(randomSeed))
}

// Mark the given host lastFetch to now
func (r *HostRateLimiter) MarkLastFetchAsNow(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFetchAt[host] = r.now()
}

// ResolveDelay returns how long the caller should still wait before
// contacting host. FinalDelay = BaseDelay + Jitter, minus the time elapsed
// since the last fetch. Hosts never fetched resolve to zero.
func (r *HostRateLimiter) ResolveDelay(host string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	last, exists := r.lastFetchAt[host]
	if !exists {
		return 0
	}

	finalDelay := r.baseDelay + timeutil.ComputeJitter(r.jitter, r.rng)
	elapsed := r.now().Sub(last)
	if elapsed < finalDelay {
		return finalDelay - elapsed
	}
	return 0
}

// Wait sleeps for the resolved delay of host, honoring ctx cancellation.
func (r *HostRateLimiter) Wait(ctx context.Context, host string) error {
	return timeutil.Sleep(ctx, r.ResolveDelay(host))
}

func (r *HostRateLimiter) BaseDelay() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.baseDelay
}

func (r *HostRateLimiter) Jitter() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jitter
}

// LastFetchAt reports when host was last marked, if ever.
func (r *HostRateLimiter) LastFetchAt(host string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.lastFetchAt[host]
	return t, ok
}

// SetClock replaces the time source; used by tests.
func (r *HostRateLimiter) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}
