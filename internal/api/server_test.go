package api

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/metrics"
	"github.com/alexanderramin/shiftpay/internal/payroll"
	"github.com/alexanderramin/shiftpay/internal/repository"
	"github.com/alexanderramin/shiftpay/internal/service"
	"github.com/alexanderramin/shiftpay/internal/testutil"
)

var fixedNow = time.Date(2025, 5, 24, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *metrics.UseCaseMetrics) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	m := metrics.NewUseCaseMetrics(prometheus.NewRegistry())

	ledger := service.NewLedgerService(repository.NewSQLiteSessionRepo(database), uow, m)
	profiles := service.NewProfileService(repository.NewSQLiteUserProfileRepo(database), uow, m)
	reports := service.NewReportService(ledger, profiles, payroll.DefaultRules(), m)

	srv := NewServer(ledger, profiles, reports,
		WithMetrics(m.Handler()),
		WithClock(func() time.Time { return fixedNow }),
	)
	return srv, m
}

// do runs one request through the handler and returns status and body.
func do(t *testing.T, srv *Server, method, uri, body string) (int, []byte) {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}, nil)
	srv.Handler()(&ctx)
	return ctx.Response.StatusCode(), append([]byte(nil), ctx.Response.Body()...)
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestStartStopWork(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, srv, "POST", "/users/alice/work/start", "")
	require.Equal(t, fasthttp.StatusCreated, status, string(body))
	started := decode[sessionResponse](t, body)
	assert.Equal(t, "alice", started.UserID)
	assert.Equal(t, "2025-05-24T09:00:00", started.StartedAt)
	assert.Nil(t, started.EndedAt)

	status, body = do(t, srv, "POST", "/users/alice/work/stop?at=2025-05-24T17:30:00", "")
	require.Equal(t, fasthttp.StatusOK, status, string(body))
	stopped := decode[sessionResponse](t, body)
	assert.Equal(t, started.ID, stopped.ID)
	require.NotNil(t, stopped.EndedAt)
	assert.Equal(t, "2025-05-24T17:30:00", *stopped.EndedAt)
	assert.InDelta(t, 8.5, stopped.Hours, 1e-9)
}

func TestStartWork_ConflictWhenAlreadyOpen(t *testing.T) {
	srv, _ := newTestServer(t)

	status, _ := do(t, srv, "POST", "/users/alice/work/start", "")
	require.Equal(t, fasthttp.StatusCreated, status)

	status, body := do(t, srv, "POST", "/users/alice/work/start", "")
	assert.Equal(t, fasthttp.StatusConflict, status)
	errResp := decode[errorResponse](t, body)
	assert.Equal(t, fasthttp.StatusConflict, errResp.Status)
	assert.Contains(t, errResp.Message, "session already open")
}

func TestStopWork_ConflictWithoutOpenSession(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, srv, "POST", "/users/alice/work/stop", "")
	assert.Equal(t, fasthttp.StatusConflict, status)
	assert.Contains(t, decode[errorResponse](t, body).Message, "no open session")
}

func TestStartWork_BadTimestamp(t *testing.T) {
	srv, _ := newTestServer(t)

	status, _ := do(t, srv, "POST", "/users/alice/work/start?at=yesterday", "")
	assert.Equal(t, fasthttp.StatusBadRequest, status)
}

func TestRecordSession(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, srv, "POST", "/users/alice/sessions",
		`{"start":"2025-05-24T09:00:00","end":"2025-05-24T17:00:00"}`)
	require.Equal(t, fasthttp.StatusCreated, status, string(body))
	assert.InDelta(t, 8.0, decode[sessionResponse](t, body).Hours, 1e-9)

	status, body = do(t, srv, "GET", "/users/alice/sessions?day=2025-05-24", "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Len(t, decode[[]sessionResponse](t, body), 1)
}

func TestRecordSession_Rejects(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"end before start", `{"start":"2025-05-24T17:00:00","end":"2025-05-24T09:00:00"}`},
		{"zero length", `{"start":"2025-05-24T09:00:00","end":"2025-05-24T09:00:00"}`},
		{"bad timestamp", `{"start":"09:00","end":"17:00"}`},
		{"bad json", `{"start":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, srv, "POST", "/users/alice/sessions", tt.body)
			assert.Equal(t, fasthttp.StatusBadRequest, status)
		})
	}
}

func TestHours(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, body := range []string{
		`{"start":"2025-05-24T09:00:00","end":"2025-05-24T17:00:00"}`,
		`{"start":"2025-05-25T10:00:00","end":"2025-05-25T14:30:00"}`,
	} {
		status, _ := do(t, srv, "POST", "/users/alice/sessions", body)
		require.Equal(t, fasthttp.StatusCreated, status)
	}

	status, body := do(t, srv, "GET", "/users/alice/hours?day=2025-05-25", "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.InDelta(t, 4.5, decode[hoursResponse](t, body).Hours, 1e-9)

	status, body = do(t, srv, "GET", "/users/alice/hours?month=2025-05", "")
	require.Equal(t, fasthttp.StatusOK, status)
	month := decode[hoursResponse](t, body)
	assert.Equal(t, "2025-05", month.Month)
	assert.InDelta(t, 12.5, month.Hours, 1e-9)

	status, _ = do(t, srv, "GET", "/users/alice/hours", "")
	assert.Equal(t, fasthttp.StatusBadRequest, status)

	status, _ = do(t, srv, "GET", "/users/alice/hours?day=2025-05-25&month=2025-05", "")
	assert.Equal(t, fasthttp.StatusBadRequest, status)

	status, _ = do(t, srv, "GET", "/users/alice/hours?month=May", "")
	assert.Equal(t, fasthttp.StatusBadRequest, status)
}

func TestMonths(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, srv, "GET", "/users/nobody/months", "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Empty(t, decode[monthsResponse](t, body).Months)

	do(t, srv, "POST", "/users/alice/sessions", `{"start":"2025-04-30T22:00:00","end":"2025-05-01T02:00:00"}`)
	do(t, srv, "POST", "/users/alice/sessions", `{"start":"2025-06-02T09:00:00","end":"2025-06-02T10:00:00"}`)

	status, body = do(t, srv, "GET", "/users/alice/months", "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Equal(t, []string{"2025-06", "2025-04"}, decode[monthsResponse](t, body).Months)
}

func TestReport(t *testing.T) {
	srv, _ := newTestServer(t)

	status, _ := do(t, srv, "PUT", "/users/alice/profile",
		`{"hourly_rate":50,"fixed_bonus":300,"credit_points":2.25}`)
	require.Equal(t, fasthttp.StatusOK, status)

	day := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := range 20 {
		start := day.AddDate(0, 0, i)
		body := `{"start":"` + start.Format("2006-01-02T15:04:05") +
			`","end":"` + start.Add(8*time.Hour).Format("2006-01-02T15:04:05") + `"}`
		status, _ := do(t, srv, "POST", "/users/alice/sessions", body)
		require.Equal(t, fasthttp.StatusCreated, status)
	}

	status, body := do(t, srv, "GET", "/users/alice/reports/2025-05", "")
	require.Equal(t, fasthttp.StatusOK, status, string(body))
	report := decode[reportResponse](t, body)

	assert.Equal(t, "2025-05", report.Month)
	assert.Equal(t, 160.0, report.Breakdown.TotalHours)
	assert.Equal(t, 8300.0, report.Breakdown.GrossPay)
	assert.Equal(t, 498.0, report.Breakdown.Pension)
	assert.Equal(t, 362.14, report.Breakdown.Insurance)
	assert.Equal(t, 366.15, report.Breakdown.IncomeTax)
	assert.Equal(t, 7073.71, report.Breakdown.NetPay)
}

func TestReport_UnknownUserIsZero(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, srv, "GET", "/users/ghost/reports/2025-05", "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Equal(t, payroll.Breakdown{}, decode[reportResponse](t, body).Breakdown)

	status, _ = do(t, srv, "GET", "/users/ghost/reports/latest", "")
	assert.Equal(t, fasthttp.StatusBadRequest, status)
}

func TestProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	status, _ := do(t, srv, "GET", "/users/alice/profile", "")
	assert.Equal(t, fasthttp.StatusNotFound, status)

	status, body := do(t, srv, "PUT", "/users/alice/profile", `{"hourly_rate":45,"language":"RU"}`)
	require.Equal(t, fasthttp.StatusOK, status, string(body))
	p := decode[profileResponse](t, body)
	assert.Equal(t, 45.0, p.HourlyRate)
	assert.Equal(t, 0.0, p.FixedBonus)
	assert.Equal(t, "ru", p.Language)

	status, body = do(t, srv, "GET", "/users/alice/profile", "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Equal(t, p, decode[profileResponse](t, body))
}

func TestProfile_InvalidUpdateChangesNothing(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, srv, "PUT", "/users/alice/profile", `{"hourly_rate":45}`)

	status, _ := do(t, srv, "PUT", "/users/alice/profile", `{"hourly_rate":60,"fixed_bonus":-1}`)
	assert.Equal(t, fasthttp.StatusBadRequest, status)

	status, _ = do(t, srv, "PUT", "/users/alice/profile", `{"hourly_rate":60,"language":"fr"}`)
	assert.Equal(t, fasthttp.StatusBadRequest, status)

	_, body := do(t, srv, "GET", "/users/alice/profile", "")
	assert.Equal(t, 45.0, decode[profileResponse](t, body).HourlyRate)
}

func TestRouteNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, tc := range []struct{ method, uri string }{
		{"GET", "/"},
		{"GET", "/users"},
		{"GET", "/users/alice/unknown"},
		{"DELETE", "/users/alice/profile"},
		{"GET", "/users/alice/work/start"},
	} {
		status, body := do(t, srv, tc.method, tc.uri, "")
		assert.Equal(t, fasthttp.StatusNotFound, status, "%s %s", tc.method, tc.uri)
		assert.Equal(t, "route not found", decode[errorResponse](t, body).Message)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, srv, "POST", "/users/alice/work/start", "")

	status, body := do(t, srv, "GET", "/metrics", "")
	require.Equal(t, fasthttp.StatusOK, status)
	assert.Contains(t, string(body), `shiftpay_use_case_total{outcome="success",use_case="start-work"} 1`)
}

func TestProfile_FailedWriteLeavesProfileUntouched(t *testing.T) {
	database := testutil.NewTestDB(t)
	profileRepo := repository.NewSQLiteUserProfileRepo(database)
	ledger := service.NewLedgerService(repository.NewSQLiteSessionRepo(database), testutil.NewTestUoW(database))
	good := service.NewProfileService(profileRepo, testutil.NewTestUoW(database))

	// ExecContext #1 = register, #2 = hourly rate, #3 = language.
	failing := service.NewProfileService(profileRepo,
		&testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: errors.New("disk full")})
	srv := NewServer(ledger, failing, service.NewReportService(ledger, good, payroll.DefaultRules()))

	status, body := do(t, srv, "PUT", "/users/alice/profile", `{"hourly_rate":45,"language":"ru"}`)
	assert.Equal(t, fasthttp.StatusInternalServerError, status, string(body))

	_, err := good.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound, "registration and rate should roll back together")
}
