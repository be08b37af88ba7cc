package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"myregistry/interfaces/mock"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	metrics := service.NewMetrics()
	e := echo.New()
	e.Use(MetricsMiddleware(metrics))
	registerHandlers(e, NewHTTPServer(&mock.RegistryMock{}, &mock.PeerReporterMock{}, log.NewNopLogger()))

	for _, target := range []string{"/v1/instances/orders/1", "/v1/instances/orders/2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/instances/orders/1/heartbeat", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodDelete, "/v1/instances/:serviceName/:instanceId", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodPut, "/v1/instances/:serviceName/:instanceId/heartbeat", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.RequestLatency))
}
