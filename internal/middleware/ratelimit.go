package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/iliyamo/campus-canteen-reservation/internal/config"
)

// bucketEntry pairs a limiter with its last use so idle buckets can be
// evicted.
type bucketEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TokenBucket returns a per-client rate limiting middleware backed by
// in-process token buckets. The store is single-process, so there is no
// distributed limiter state to share; one bucket per client key is enough.
// Rejected requests get a 429 with a Retry-After hint.
func TokenBucket(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucketEntry)
		lastSweep = time.Now()
	)
	limit := rate.Every(cfg.RefillEvery)

	// Eviction of idle buckets rides on request handling rather than a
	// background goroutine, so constructing the middleware allocates nothing
	// that outlives it. At most one sweep per TTL, under the lock already
	// held for the lookup.
	sweepLocked := func(now time.Time) {
		if now.Sub(lastSweep) < cfg.TTL {
			return
		}
		for key, e := range buckets {
			if now.Sub(e.lastSeen) > cfg.TTL {
				delete(buckets, key)
			}
		}
		lastSweep = now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			now := time.Now()

			mu.Lock()
			sweepLocked(now)
			e, ok := buckets[key]
			if !ok {
				e = &bucketEntry{limiter: rate.NewLimiter(limit, cfg.Burst)}
				buckets[key] = e
			}
			e.lastSeen = now
			allowed := e.limiter.Allow()
			mu.Unlock()

			if !allowed {
				retryAfter := int(cfg.RefillEvery / time.Second)
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}

// buildRateKey derives the bucket key for a request according to the
// configured strategy. The default includes the student identity so a noisy
// client behind a shared NAT does not starve its neighbours.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	switch cfg.KeyStrategy {
	case "ip":
		return ip
	case "ip_route":
		return ip + "|" + c.Path()
	default: // "ip_student_route"
		student := "guest"
		if id, ok := StudentID(c); ok {
			student = strconv.FormatInt(id, 10)
		}
		return ip + "|" + student + "|" + c.Path()
	}
}
