package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMiddlewareCountsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/forms/:formId", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	RegisterMetricsEndpoint(r)

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/forms/:formId", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/forms/abc", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/forms/:formId", "204")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "formflow_http_requests_total")
}

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(formTransitions.WithLabelValues("submit"))
	RecordTransition("submit")
	assert.Equal(t, before+1, testutil.ToFloat64(formTransitions.WithLabelValues("submit")))

	beforeN := testutil.ToFloat64(notificationsDispatched.WithLabelValues("FORM_ASSIGNED", "ok"))
	RecordNotification("FORM_ASSIGNED", "ok")
	assert.Equal(t, beforeN+1, testutil.ToFloat64(notificationsDispatched.WithLabelValues("FORM_ASSIGNED", "ok")))
}

func TestFormsByStatusCollector(t *testing.T) {
	c := NewFormsByStatusCollector(func(ctx context.Context) (map[string]int64, error) {
		return map[string]int64{"ASSIGNED": 2, "SUBMITTED": 1}, nil
	})
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	expected := `
# HELP formflow_forms Forms currently in each lifecycle status.
# TYPE formflow_forms gauge
formflow_forms{status="ASSIGNED"} 2
formflow_forms{status="SUBMITTED"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "formflow_forms"))
}

func TestFormsByStatusCollectorSkipsOnError(t *testing.T) {
	c := NewFormsByStatusCollector(func(ctx context.Context) (map[string]int64, error) {
		return nil, errors.New("db down")
	})
	assert.Equal(t, 0, testutil.CollectAndCount(c))
}
