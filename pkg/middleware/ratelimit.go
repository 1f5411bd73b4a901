package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"flight-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiters idle for this long are dropped on the next sweep
const limiterIdleTTL = 10 * time.Minute

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client IP.
type ClientLimiter struct {
	limiters  map[string]*clientEntry
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewClientLimiter(cfg utils.RateLimitConfig) *ClientLimiter {
	return &ClientLimiter{
		limiters:  make(map[string]*clientEntry),
		rps:       rate.Limit(cfg.RPS),
		burst:     cfg.Burst,
		idle:      limiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *ClientLimiter) GetLimiter(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	entry, exists := l.limiters[client]
	if !exists {
		entry = &clientEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[client] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops clients not seen within the idle window. Caller holds mu.
func (l *ClientLimiter) sweep(now time.Time) {
	for client, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idle {
			delete(l.limiters, client)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects requests with 429 once a client exhausts its bucket.
func RateLimit(limiter *ClientLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)
			if !limiter.GetLimiter(client).Allow() {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", client),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseTooManyRequests(w, "Too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
