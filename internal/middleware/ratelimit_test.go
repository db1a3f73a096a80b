package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/campus-canteen-reservation/internal/config"
)

func limitedServer(cfg config.RateLimitConfig) *echo.Echo {
	e := echo.New()
	e.Use(StudentIdentity())
	e.Use(TokenBucket(cfg))
	e.GET("/canteens", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func hit(e *echo.Echo, studentID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/canteens", nil)
	if studentID != "" {
		req.Header.Set("studentId", studentID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketRejectsBeyondBurst(t *testing.T) {
	e := limitedServer(config.RateLimitConfig{
		Enabled:     true,
		Burst:       2,
		RefillEvery: time.Hour, // no refill within the test
		TTL:         5 * time.Hour,
		KeyStrategy: "ip_student_route",
	})

	require.Equal(t, http.StatusOK, hit(e, "1").Code)
	require.Equal(t, http.StatusOK, hit(e, "1").Code)

	rec := hit(e, "1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Another student behind the same IP has their own bucket.
	assert.Equal(t, http.StatusOK, hit(e, "2").Code)
}

func TestTokenBucketDisabled(t *testing.T) {
	e := limitedServer(config.RateLimitConfig{Enabled: false})
	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, hit(e, "1").Code)
	}
}

func TestTokenBucketConstructorStartsNoGoroutine(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:     true,
		Burst:       1,
		RefillEvery: time.Millisecond,
		TTL:         time.Second,
		KeyStrategy: "ip",
	}

	before := runtime.NumGoroutine()
	for i := 0; i < 50; i++ {
		_ = TokenBucket(cfg)
	}
	after := runtime.NumGoroutine()
	assert.LessOrEqual(t, after, before+2)
}
