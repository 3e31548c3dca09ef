package config

import "time"

// QuoteCacheConfig controls the Redis response cache applied to the quote
// proxy routes. The upstream market-data provider is slow and rate limited,
// so successful GET responses are cached for a short window. When Enabled is
// false or no Redis client could be connected, caching is disabled and
// requests go straight to the provider.
type QuoteCacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadQuoteCacheConfig reads environment variables to build a
// QuoteCacheConfig. Defaults are used when variables are not set.
func LoadQuoteCacheConfig() QuoteCacheConfig {
	return QuoteCacheConfig{
		Enabled:      envBool("QUOTE_CACHE_ENABLED", true),
		TTL:          envDur("QUOTE_CACHE_TTL", time.Minute),
		Prefix:       envStr("QUOTE_CACHE_PREFIX", "quote"),
		MaxBodyBytes: envInt("QUOTE_CACHE_MAX_BODY_BYTES", 1048576),
	}
}
