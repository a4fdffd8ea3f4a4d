package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "go.uber.org/zap/zaptest/observer"

    "github.com/iliyamo/greeting-service/internal/config"
)

func greetingServer(mw echo.MiddlewareFunc) *echo.Echo {
    e := echo.New()
    e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "Hello, World!") }, mw)
    return e
}

func get(e *echo.Echo) *httptest.ResponseRecorder {
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
    return rec
}

func unreachableRedis(t *testing.T) *redis.Client {
    t.Helper()
    rdb := redis.NewClient(&redis.Options{
        Addr:        "127.0.0.1:1",
        DialTimeout: 50 * time.Millisecond,
        MaxRetries:  -1,
    })
    t.Cleanup(func() { _ = rdb.Close() })
    return rdb
}

func TestTokenBucketPassThroughWithoutRedis(t *testing.T) {
    e := greetingServer(NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))
    for i := 0; i < 3; i++ {
        rec := get(e)
        assert.Equal(t, http.StatusOK, rec.Code)
        assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
    }
}

func TestTokenBucketBlocksAndRefills(t *testing.T) {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })

    cfg := config.RateLimitConfig{
        Enabled: true, Capacity: 1, RefillTokens: 1,
        RefillInterval: 300 * time.Millisecond, TTL: time.Minute,
        KeyStrategy: "ip_route", Prefix: "test",
    }
    e := greetingServer(NewTokenBucket(cfg, rdb))

    rec := get(e)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "Hello, World!", rec.Body.String())
    assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
    assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

    rec = get(e)
    require.Equal(t, http.StatusTooManyRequests, rec.Code)
    assert.Equal(t, "Too Many Requests", rec.Body.String())
    assert.Equal(t, "1", rec.Header().Get("Retry-After"))
    assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

    time.Sleep(cfg.RefillInterval + 50*time.Millisecond)
    rec = get(e)
    assert.Equal(t, http.StatusOK, rec.Code)

    keys := mr.Keys()
    require.Len(t, keys, 1)
    assert.Equal(t, "test:ip:192.0.2.1:route:GET /", keys[0])
    assert.Equal(t, "1", mr.HGet(keys[0], "capacity"))
    assert.Equal(t, time.Minute, mr.TTL(keys[0]))
}

func TestTokenBucketFailsOpenOnRedisError(t *testing.T) {
    cfg := config.RateLimitConfig{
        Enabled: true, Capacity: 1, RefillTokens: 1,
        RefillInterval: time.Second, TTL: time.Minute, Prefix: "test",
    }
    rec := get(greetingServer(NewTokenBucket(cfg, unreachableRedis(t))))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "Hello, World!", rec.Body.String())
}

func TestTokenBucketRedisErrorLoggedOnlyInDebug(t *testing.T) {
    for _, debug := range []bool{false, true} {
        core, logs := observer.New(zapcore.DebugLevel)
        restore := zap.ReplaceGlobals(zap.New(core))

        cfg := config.RateLimitConfig{
            Enabled: true, Capacity: 1, RefillTokens: 1,
            RefillInterval: time.Second, TTL: time.Minute, Prefix: "test", Debug: debug,
        }
        e := greetingServer(NewTokenBucket(cfg, unreachableRedis(t)))
        for i := 0; i < 3; i++ {
            assert.Equal(t, http.StatusOK, get(e).Code)
        }
        restore()

        want := 0
        if debug {
            want = 3
        }
        assert.Equal(t, want, logs.FilterLevelExact(zapcore.WarnLevel).Len(), "debug=%v", debug)
    }
}

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/")

    tests := []struct {
        strategy string
        want     string
    }{
        {"ip", "rl:ip:10.0.0.7"},
        {"route", "rl:route:GET /"},
        {"ip_route", "rl:ip:10.0.0.7:route:GET /"},
        {"", "rl:ip:10.0.0.7:route:GET /"},
    }
    for _, tt := range tests {
        cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: tt.strategy}
        assert.Equal(t, tt.want, buildRateKey(cfg, c), tt.strategy)
    }
}
