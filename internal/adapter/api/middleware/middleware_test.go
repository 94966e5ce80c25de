package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecatalog/internal/domain/entity"
	"gamecatalog/internal/infrastructure/metrics"
	"gamecatalog/internal/infrastructure/ratelimit"
	"gamecatalog/internal/store"
	"gamecatalog/internal/testutil/mocks"
	"gamecatalog/internal/usecase"
	"gamecatalog/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(ratelimit.NewRateLimiter(0.001, 2)))
	e.GET("/ping", ok)

	assert.Equal(t, http.StatusOK, serve(e, "/ping").Code)
	assert.Equal(t, http.StatusOK, serve(e, "/ping").Code)

	rec := serve(e, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestAuthenticate(t *testing.T) {
	st := store.New(store.InitialState(store.Config{}))
	auth := usecase.NewAuthUseCase(st, &mocks.MockIdentityClient{}, &mocks.MockUserRepository{}, mocks.NewMemoryLocalStore())
	m := NewAuthMiddleware(auth)

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("uid").(string))
	}, m.Authenticate)

	rec := serve(e, "/me")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	st.UpdateAuth(func(a store.AuthState) store.AuthState {
		a, _ = store.BeginSessionCheck(a)
		a, _ = store.SessionRestored(a, entity.User{ID: "u1"})
		return a
	})
	rec = serve(e, "/me")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/games/:id", ok)
	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/games/:id", "200")
	before := testutil.ToFloat64(counter)

	serve(e, "/games/a")
	serve(e, "/games/b")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
