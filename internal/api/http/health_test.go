package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, h *HealthHandler, method string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	req := httptest.NewRequest(method, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp HealthResponse
	if rr.Code != http.StatusMethodNotAllowed {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func TestHealthCheck(t *testing.T) {
	rr, resp := serveHealth(t, NewHealthHandler("test-service", "1.0.0", nil, []string{"openai"}), http.MethodGet)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test-service", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "disabled", resp.DB)
	assert.Equal(t, []string{"openai"}, resp.Providers)
}

func TestHealthCheck_DBUp(t *testing.T) {
	db := pingFunc(func(context.Context) error { return nil })
	rr, resp := serveHealth(t, NewHealthHandler("svc", "1", db, nil), http.MethodGet)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "up", resp.DB)
	assert.Equal(t, []string{}, resp.Providers)
}

func TestHealthCheck_DBDown(t *testing.T) {
	db := pingFunc(func(context.Context) error { return errors.New("refused") })
	rr, resp := serveHealth(t, NewHealthHandler("svc", "1", db, nil), http.MethodGet)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.DB)
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	rr, _ := serveHealth(t, NewHealthHandler("svc", "1", nil, nil), http.MethodPost)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
