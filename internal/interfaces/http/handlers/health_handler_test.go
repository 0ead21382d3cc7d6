package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgen/pkg/types/common"
)

func serveHealth(t *testing.T, h *HealthHandler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	r := gin.New()
	h.RegisterRoutes(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("v1.2.3", CheckFunc("redis", func(context.Context) error { return fmt.Errorf("down") }))
	w, body := serveHealth(t, h, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", body["status"])
	assert.Equal(t, "v1.2.3", body["version"])
}

func TestHealthHandler_Readiness_NoCheckers(t *testing.T) {
	w, body := serveHealth(t, NewHealthHandler("dev"), "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", body["status"])
	assert.NotContains(t, body, "components")
}

func TestHealthHandler_Readiness_AllUp(t *testing.T) {
	h := NewHealthHandler("dev",
		CheckFunc("redis", func(context.Context) error { return nil }),
		CheckFunc("postgres", func(context.Context) error { return nil }),
	)
	w := httptest.NewRecorder()
	r := gin.New()
	h.RegisterRoutes(r)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp common.ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Len(t, resp.Components, 2)
	assert.Equal(t, common.HealthUp, resp.Components["redis"].Status)
}

func TestHealthHandler_Readiness_OneDown(t *testing.T) {
	h := NewHealthHandler("dev",
		CheckFunc("redis", func(context.Context) error { return nil }),
		CheckFunc("minio", func(context.Context) error { return fmt.Errorf("connection refused") }),
	)
	w := httptest.NewRecorder()
	r := gin.New()
	h.RegisterRoutes(r)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp common.ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, common.HealthDown, resp.Components["minio"].Status)
	assert.Equal(t, "connection refused", resp.Components["minio"].Error)
}

func TestHealthHandler_Readiness_HonoursTimeout(t *testing.T) {
	h := NewHealthHandler("dev", CheckFunc("slow", func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		if !ok || time.Until(deadline) > readinessTimeout {
			return fmt.Errorf("no deadline")
		}
		return nil
	}))
	w, _ := serveHealth(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
}

//Personal.AI order the ending
