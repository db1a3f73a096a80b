package config

import "time"

// CacheConfig controls the Redis response cache applied to the read-only
// browse endpoints. When disabled, or when no Redis server is reachable at
// startup, the middleware is a no-op; cached responses are derived data and
// the store remains the only source of truth.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int // responses larger than this are served but not cached
}

// LoadCacheConfig reads the cache settings with defaults suitable for the
// small JSON payloads this service produces.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
