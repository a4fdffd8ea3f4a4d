package config

// Redis is optional for this service.  When no address is configured the
// rate limiter degrades to a pass-through and /ready skips the Redis check.

import (
    "crypto/tls"
    "os"
    "strings"

    "github.com/redis/go-redis/v9"
)

// RedisAddr resolves the Redis address from REDIS_HOST/REDIS_PORT or
// REDIS_ADDR.  Host and port take precedence.  An empty result means Redis
// is not configured.
func RedisAddr() string {
    host := os.Getenv("REDIS_HOST")
    port := os.Getenv("REDIS_PORT")
    if host != "" && port != "" {
        return host + ":" + port
    }
    return os.Getenv("REDIS_ADDR")
}

// NewRedisClient builds a client from the environment, or returns nil when
// Redis is not configured.  No connection is attempted here; the readiness
// probe reports reachability.
//   REDIS_PASSWORD – optional password
//   REDIS_DB – database number (default 0)
//   REDIS_TLS – enable TLS when "true" or "1"
func NewRedisClient() *redis.Client {
    addr := RedisAddr()
    if addr == "" {
        return nil
    }
    var tlsConf *tls.Config
    if tlsEnv := os.Getenv("REDIS_TLS"); strings.EqualFold(tlsEnv, "true") || tlsEnv == "1" {
        tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    return redis.NewClient(&redis.Options{
        Addr:      addr,
        Password:  os.Getenv("REDIS_PASSWORD"),
        DB:        envInt("REDIS_DB", 0),
        TLSConfig: tlsConf,
    })
}
