package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/shiftpay/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *UseCaseMetrics {
	t.Helper()
	return NewUseCaseMetrics(prometheus.NewRegistry())
}

func TestObserveUseCase_CountsByOutcome(t *testing.T) {
	m := newTestMetrics(t)
	ctx := context.Background()

	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "start-work", Success: true, Duration: 2 * time.Millisecond})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "start-work", Success: true})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "start-work", Err: errors.New("already open")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Total.WithLabelValues("start-work", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Total.WithLabelValues("start-work", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestObserveUseCase_DispatchFailures(t *testing.T) {
	m := newTestMetrics(t)

	m.ObserveUseCase(context.Background(), service.UseCaseEvent{
		Name:    "dispatch-month",
		Success: true,
		Fields:  map[string]any{"delivered": 4, "failed": 2},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DispatchFailures))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := newTestMetrics(t)
	m.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "build-monthly-report", Success: true})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `shiftpay_use_case_total{outcome="success",use_case="build-monthly-report"} 1`)
	assert.Contains(t, string(body), "shiftpay_use_case_duration_seconds_bucket")
}
