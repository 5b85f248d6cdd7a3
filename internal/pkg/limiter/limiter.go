/*
Package limiter provides token-bucket rate limiting for write endpoints.

Requests are bucketed by the signed-in user when an identity is present and by
client IP otherwise, so one account cannot dodge its limit by switching networks
and anonymous traffic is still throttled per address. A janitor goroutine drops
idle buckets to keep memory bounded.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"agora/internal/pkg/auth/jwt"
	"agora/internal/pkg/errs"
	"agora/internal/pkg/logx"
	"agora/internal/pkg/resp"

	"golang.org/x/time/rate"
)

// cleanupInterval is how often idle buckets are swept.
const cleanupInterval = 3 * time.Minute

// RateLimiter hands out one rate.Limiter per caller key.
type RateLimiter struct {
	// mu protects concurrent access to the limits map.
	mu sync.RWMutex

	// limits maps a caller key ("user:<id>" or "ip:<addr>") to its token bucket.
	limits map[string]*rate.Limiter

	// r is the refill rate in events per second.
	r rate.Limit

	// b is the bucket size, i.e. the largest burst allowed.
	b int

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing r events per second with bursts of b,
// and starts the background sweep. Call Close to stop it.
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	l := &RateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
		stop:   make(chan struct{}),
	}

	go l.cleanUpVisitors()

	return l
}

// Close stops the background sweep. It is safe to call more than once.
func (l *RateLimiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// GetLimiter returns the bucket for key, creating it on first use.
// Creation uses double-checked locking so concurrent first requests share one bucket.
func (l *RateLimiter) GetLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limits[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists = l.limits[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limits[key] = limiter
	}

	return limiter
}

// Allow reports whether the caller identified by key may proceed now.
func (l *RateLimiter) Allow(key string) bool {
	return l.GetLimiter(key).Allow()
}

// cleanUpVisitors periodically removes buckets that have refilled completely,
// which means the caller has been idle long enough to start fresh.
func (l *RateLimiter) cleanUpVisitors() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			removed := 0
			for key, limiter := range l.limits {
				if limiter.TokensAt(now) >= float64(limiter.Burst()) {
					delete(l.limits, key)
					removed++
				}
			}
			remaining := len(l.limits)
			l.mu.Unlock()

			logx.Logger().Debug().
				Int("removed", removed).
				Int("remaining", remaining).
				Msg("Rate limiter cleanup finished.")
		}
	}
}

// Middleware rejects requests over the limit with ErrRateLimitExceeded (HTTP 429).
// It must run after the identity extractor so signed-in users are keyed by ID.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientKey(r)) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientKey identifies the caller of r for rate limiting purposes.
func ClientKey(r *http.Request) string {
	if payload := jwt.GetPayloadFromContext(r); payload != nil && payload.ID != "" {
		return "user:" + payload.ID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if ip == "" {
		ip = "unknown_ip"
	}

	return "ip:" + ip
}
