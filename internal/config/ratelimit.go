package config

import "time"

// RateLimitConfig controls the in-process token bucket applied to every
// request. Buckets are kept per client key (see KeyStrategy) and refill
// continuously; idle buckets are evicted after TTL.
type RateLimitConfig struct {
	Enabled     bool
	Burst       int           // bucket capacity
	RefillEvery time.Duration // one token per interval
	TTL         time.Duration // idle bucket eviction
	KeyStrategy string        // "ip", "ip_route" or "ip_student_route"
}

// LoadRateLimitConfig reads the rate limit settings, clamping nonsense
// values to safe minimums.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:     envBool("RATE_LIMIT_ENABLED", true),
		Burst:       envInt("RATE_LIMIT_BURST", 60),
		RefillEvery: envDur("RATE_LIMIT_REFILL_EVERY", time.Second),
		TTL:         envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy: envStr("RATE_LIMIT_KEY_STRATEGY", "ip_student_route"),
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.RefillEvery <= 0 {
		cfg.RefillEvery = time.Second
	}
	if min := 5 * cfg.RefillEvery; cfg.TTL < min {
		cfg.TTL = min
	}
	return cfg
}
