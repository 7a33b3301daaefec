package config

import (
    "time"
)

// RateLimitConfig configures the Redis token-bucket limiter applied to every
// API route.  Capacity is the bucket size, RefillTokens/RefillInterval the
// refill rate, TTL how long an idle bucket survives in Redis.  KeyStrategy
// decides whether buckets are scoped per IP, per user, per route or a
// combination of the three.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

// LoadRateLimitConfig builds a RateLimitConfig from environment variables,
// clamping nonsensical values back to safe minimums.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Capacity:       atoiOr(getenv("RATE_LIMIT_CAPACITY", ""), 60),
        RefillTokens:   atoiOr(getenv("RATE_LIMIT_REFILL_TOKENS", ""), 1),
        RefillInterval: durOr(getenv("RATE_LIMIT_REFILL_INTERVAL", ""), time.Second),
        TTL:            durOr(getenv("RATE_LIMIT_TTL", ""), 10*time.Minute),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "rl"),
        Debug:          getenv("RATE_LIMIT_DEBUG", "false") == "true",
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillTokens < 1 {
        cfg.RefillTokens = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    // An idle bucket must outlive several refill intervals or limits reset
    // too eagerly.
    if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
        cfg.TTL = minTTL
    }
    return cfg
}

func atoiOr(s string, def int) int {
    if s == "" {
        return def
    }
    if n := atoi(s); n != 0 || s == "0" {
        return n
    }
    return def
}

func durOr(s string, def time.Duration) time.Duration {
    if s == "" {
        return def
    }
    if d, err := time.ParseDuration(s); err == nil {
        return d
    }
    return def
}
