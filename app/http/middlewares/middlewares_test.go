package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/ping", ok)
	r.GET("/pong", ok)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func get(r *gin.Engine, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLimitIPRejectsAfterBurst(t *testing.T) {
	r := newRouter(LimitIP("1-H"))

	for i := 0; i < DefaultBurst; i++ {
		w := get(r, http.MethodGet, "/ping", "10.0.0.1")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
	}

	w := get(r, http.MethodGet, "/ping", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too Many Requests")

	// 其他 IP 不受影响
	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "/ping", "10.0.0.2").Code)
}

func TestLimitPerRouteKeysByRoute(t *testing.T) {
	r := newRouter(LimitPerRoute("2-H"))

	for i := 0; i < DefaultBurst; i++ {
		require.Equal(t, http.StatusOK, get(r, http.MethodGet, "/ping", "10.0.1.1").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, get(r, http.MethodGet, "/ping", "10.0.1.1").Code)
	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "/pong", "10.0.1.1").Code)
}

func TestLimitInvalidFormatLetsRequestsThrough(t *testing.T) {
	r := newRouter(LimitIP("lots"))
	for i := 0; i < DefaultBurst+5; i++ {
		require.Equal(t, http.StatusOK, get(r, http.MethodGet, "/ping", "10.0.2.1").Code)
	}
}

func TestSweepLimiters(t *testing.T) {
	now := time.Now()
	_, err := getLimiter("sweep-test", RateLimitConfig{Limit: "5-S", Burst: 1})
	require.NoError(t, err)

	sweepLimiters(now)
	_, ok := limiters.Load("sweep-test")
	assert.True(t, ok)

	sweepLimiters(now.Add(limiterIdleTTL + time.Minute))
	_, ok = limiters.Load("sweep-test")
	assert.False(t, ok)
}

func TestCorsAndSecurityHeaders(t *testing.T) {
	r := newRouter(SecurityHeaders(), Cors())

	w := get(r, http.MethodGet, "/ping", "10.0.3.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	w = get(r, http.MethodOptions, "/ping", "10.0.3.1")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecoveryReturnsJSON500(t *testing.T) {
	r := newRouter(Logger(), Recovery())

	w := get(r, http.MethodGet, "/panic", "10.0.4.1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}
