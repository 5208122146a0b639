package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"simple-cms/internal/handler/http/respond"
	"simple-cms/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultCleanupInterval is used when RATELIMIT_CLEANUP_INTERVAL is unset.
const DefaultCleanupInterval = 5 * time.Minute

var rateLimitRejected = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejected_total",
		Help: "Total number of requests rejected by the per-IP rate limiter",
	},
)

// RateLimitConfig configures the per-IP token bucket.
type RateLimitConfig struct {
	Enabled         bool
	RPS             float64
	Burst           int
	CleanupInterval time.Duration
}

// Validate rejects settings the limiter cannot run with.
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RPS <= 0 {
		return errors.New("rate limit rps must be positive")
	}
	if c.Burst < 1 {
		return errors.New("rate limit burst must be at least 1")
	}
	if err := config.ValidatePositiveDuration(c.CleanupInterval); err != nil {
		return errors.New("rate limit cleanup interval: " + err.Error())
	}
	return nil
}

// LoadRateLimitConfigFromEnv reads RATELIMIT_ENABLED, RATELIMIT_RPS,
// RATELIMIT_BURST and RATELIMIT_CLEANUP_INTERVAL.
func LoadRateLimitConfigFromEnv() RateLimitConfig {
	return RateLimitConfig{
		Enabled:         config.GetEnvBool("RATELIMIT_ENABLED", true),
		RPS:             config.GetEnvFloat("RATELIMIT_RPS", 10),
		Burst:           config.GetEnvInt("RATELIMIT_BURST", 20),
		CleanupInterval: config.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval),
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second per IP
// with bursts of up to burst requests.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) reserve(ip string) *rate.Reservation {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.ReserveN(now, 1)
}

// allow consumes a token for ip. When none is available it returns the delay
// until one will be.
func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	res := rl.reserve(ip)
	if !res.OK() {
		return false, time.Second
	}
	now := rl.now()
	delay := res.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	res.CancelAt(now)
	return false, delay
}

// Limit rejects requests over the per-IP budget with 429 and Retry-After.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := rl.allow(extractIP(r))
		if !ok {
			rateLimitRejected.Inc()
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup drops buckets that have been idle for longer than maxIdle and
// returns how many were removed.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-maxIdle)
	removed := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// StartRateLimitCleanup evicts buckets idle for a full interval, every
// interval, until ctx is done.
func StartRateLimitCleanup(ctx context.Context, rl *RateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			removed := rl.Cleanup(interval)
			slog.Debug("rate limit cleanup completed",
				slog.Int("keys_removed", removed),
				slog.Int("active_keys", rl.Len()))
		}
	}
}
