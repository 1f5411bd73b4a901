package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flight-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	limiter := NewClientLimiter(utils.RateLimitConfig{RPS: 0.001, Burst: 2})
	h := RateLimit(limiter, zap.NewNop())(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/flight/reserve-seat", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/api/flight/reserve-seat", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewClientLimiter(utils.RateLimitConfig{RPS: 1, Burst: 1})
	clock := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock

	limiter.GetLimiter("10.0.0.1")
	limiter.GetLimiter("10.0.0.2")
	assert.Len(t, limiter.limiters, 2)

	clock = clock.Add(6 * time.Minute)
	limiter.GetLimiter("10.0.0.2")

	// 10.0.0.1 idles past the window, 10.0.0.2 was seen 5 minutes ago
	clock = clock.Add(5 * time.Minute)
	limiter.GetLimiter("10.0.0.3")
	assert.Len(t, limiter.limiters, 2)

	clock = clock.Add(limiterIdleTTL)
	limiter.GetLimiter("10.0.0.3")
	assert.Len(t, limiter.limiters, 1)
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error","err":{"message":"Internal server error"}}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := CORS()(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/booking/create-booking", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerCapturesStatus(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
