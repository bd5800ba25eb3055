package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter ──────────────────────────────────────────────────────

// window tracks the requests of one client IP.
type window struct {
	count int
	end   time.Time
}

// Limiter allows limit requests per client IP per period.
type Limiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*window
}

func NewLimiter(limit int, period time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		period:  period,
		now:     time.Now,
		clients: make(map[string]*window),
	}
}

// Allow records one request from ip. When the request is over the limit it
// returns false and the time the window resets.
func (l *Limiter) Allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[ip]
	if !ok || now.After(w.end) {
		w = &window{end: now.Add(l.period)}
		l.clients[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.end
}

// Purge drops expired windows and reports how many were removed.
func (l *Limiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	purged := 0
	for ip, w := range l.clients {
		if now.After(w.end) {
			delete(l.clients, ip)
			purged++
		}
	}
	return purged
}

// Middleware rejects over-limit requests with 429 and msg.
func (l *Limiter) Middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, reset := l.Allow(c.ClientIP())
		if !ok {
			secs := int(time.Until(reset).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// ── Presets ───────────────────────────────────────────────────────────────────

// LoginRateLimiter guards the login endpoint against password guessing.
func LoginRateLimiter(l *Limiter) gin.HandlerFunc {
	return l.Middleware("too many login attempts, try again in a minute")
}

// RateLimiter is the general API limiter.
func RateLimiter(l *Limiter) gin.HandlerFunc {
	return l.Middleware("too many requests, try again shortly")
}

// ── Purge loop ────────────────────────────────────────────────────────────────

const purgeInterval = 5 * time.Minute

// PurgeLoop periodically removes expired windows until stop is closed.
func PurgeLoop(stop <-chan struct{}, limiters ...*Limiter) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			purged := 0
			for _, l := range limiters {
				purged += l.Purge()
			}
			if purged > 0 {
				log.Debug().Int("entries_purged", purged).Msg("rate limiter windows purged")
			}
		}
	}
}
