package wire

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flight-booking/internal/data/repository"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/cache"
	"flight-booking/pkg/utils"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, config *utils.Config) (*App, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := repository.NewRepository(pool, zap.NewNop())
	app := Wiring(repo, config, zap.NewNop(), usecase.Deps{Cache: cache.NewNoOpCache()})
	return app, pool
}

func serve(app *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.10:40000"
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestWiring_Health(t *testing.T) {
	app, _ := newTestApp(t, &utils.Config{})

	rec := serve(app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = serve(app, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWiring_RateLimitsSeatWrites(t *testing.T) {
	app, pool := newTestApp(t, &utils.Config{
		RateLimit: utils.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1},
	})

	// rejected by validation, so no query runs
	rec := serve(app, http.MethodPost, "/api/flight/reserve-seat", `{"flightId":"EZ00001","seatNumbers":["99Z"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(app, http.MethodPost, "/api/flight/reserve-seat", `{"flightId":"EZ00001","seatNumbers":["1A"]}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// reads are not limited
	rec = serve(app, http.MethodGet, "/api/airplane/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestWiring_NoLimitWhenDisabled(t *testing.T) {
	app, _ := newTestApp(t, &utils.Config{})

	for i := 0; i < 5; i++ {
		rec := serve(app, http.MethodPost, "/api/booking/create-booking", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}
