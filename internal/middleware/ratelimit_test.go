package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httptest.NewRequest 的默认 RemoteAddr 为 192.0.2.1:1234
const testRateKey = "t:ratelimit:192.0.2.1"

func newRateLimitedRouter(t *testing.T, max int, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	r.Use(RateLimit(client, "t:", max, window))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r, mr
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	return w
}

func TestRateLimit_Threshold(t *testing.T) {
	r, _ := newRateLimitedRouter(t, 2, time.Minute)

	w := hit(r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = hit(r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "Too many requests")
}

func TestRateLimit_ExpirySetOnFirstHitOnly(t *testing.T) {
	r, mr := newRateLimitedRouter(t, 5, time.Minute)

	hit(r)
	assert.Equal(t, time.Minute, mr.TTL(testRateKey))

	mr.FastForward(20 * time.Second)
	hit(r)
	// 后续请求不会延长窗口
	assert.Equal(t, 40*time.Second, mr.TTL(testRateKey))

	count, err := mr.Get(testRateKey)
	require.NoError(t, err)
	assert.Equal(t, "2", count)
}

func TestRateLimit_WindowResets(t *testing.T) {
	r, mr := newRateLimitedRouter(t, 1, time.Minute)

	assert.Equal(t, http.StatusOK, hit(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)

	mr.FastForward(time.Minute + time.Second)

	assert.Equal(t, http.StatusOK, hit(r).Code)
}

func TestRateLimit_RedisFailure(t *testing.T) {
	r, mr := newRateLimitedRouter(t, 1, time.Minute)
	mr.Close()

	w := hit(r)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimit_InvalidArguments(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	assert.Panics(t, func() { RateLimit(nil, "t:", 1, time.Second) })
	assert.Panics(t, func() { RateLimit(client, "t:", 0, time.Second) })
	assert.Panics(t, func() { RateLimit(client, "t:", 1, 0) })
}
