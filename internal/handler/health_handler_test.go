package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }

	t.Run("Healthy", func(t *testing.T) {
		router := gin.New()
		NewHealthHandler(map[string]HealthCheck{"postgres": ok, "redis": ok}).RegisterRoutes(router)

		w := serve(router, createJSONHTTPRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "OK", body["status"])
		assert.Equal(t, map[string]interface{}{"postgres": "ok", "redis": "ok"}, body["checks"])
	})

	t.Run("Dependency down", func(t *testing.T) {
		router := gin.New()
		NewHealthHandler(map[string]HealthCheck{
			"postgres": ok,
			"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
		}).RegisterRoutes(router)

		w := serve(router, createJSONHTTPRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		checks := decodeBody(t, w)["checks"].(map[string]interface{})
		assert.Equal(t, "connection refused", checks["redis"])
	})
}
