package middleware

import (
	"net/http"
	"sync"
	"time"

	"trazabilidad/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// limiter is one independent per-IP table. Each RateLimiter call gets its own.
type limiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
}

func (l *limiter) entry(ip string) *rateEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[ip]
	if !ok {
		e = &rateEntry{}
		l.entries[ip] = e
	}
	return e
}

// purge drops expired entries and reports how many were removed.
func (l *limiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	purged := 0
	for ip, e := range l.entries {
		e.mu.Lock()
		if now.After(e.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
		e.mu.Unlock()
	}
	return purged
}

// RateLimiter returns a per-IP rate limiter allowing limit requests per window.
// The QR endpoint gets a tighter one than the rest of the API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := &limiter{entries: make(map[string]*rateEntry)}
	go purgeLoop(l, window)

	return func(c *gin.Context) {
		entry := l.entry(c.ClientIP())

		entry.mu.Lock()
		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}
		entry.count++
		exceeded := entry.count > limit
		retryAt := entry.windowEnd
		entry.mu.Unlock()

		if exceeded {
			c.Header("Retry-After", retryAt.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

const minPurgeInterval = 5 * time.Minute

// purgeLoop removes expired entries so IPs that never return do not pile up.
func purgeLoop(l *limiter, window time.Duration) {
	interval := window
	if interval < minPurgeInterval {
		interval = minPurgeInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for now := range ticker.C {
		if n := l.purge(now); n > 0 {
			log.Debug().Int("entries_purged", n).Msg("rate limiter purged")
		}
	}
}
