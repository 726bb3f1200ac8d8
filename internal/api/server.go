package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/alexanderramin/shiftpay/internal/service"
)

// Server exposes the ledger, profile and report services over HTTP.
type Server struct {
	ledger   service.LedgerService
	profiles service.ProfileService
	reports  service.ReportService
	metrics  fasthttp.RequestHandler
	logger   *slog.Logger
	now      func() time.Time
	baseCtx  context.Context
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics mounts an http.Handler (typically promhttp) under /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		if h != nil {
			s.metrics = fasthttpadaptor.NewFastHTTPHandler(h)
		}
	}
}

// WithClock overrides the time source used when a request carries no ?at=.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the logger for internal errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewServer(ledger service.LedgerService, profiles service.ProfileService, reports service.ReportService, opts ...Option) *Server {
	s := &Server{
		ledger:   ledger,
		profiles: profiles,
		reports:  reports,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		baseCtx:  context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root request handler.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.route
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.baseCtx = ctx
	srv := &fasthttp.Server{
		Handler:      s.route,
		Name:         "shiftpay",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return <-errc
	}
}

// route dispatches on path segments:
//
//	/metrics
//	/users/{id}/work/start
//	/users/{id}/work/stop
//	/users/{id}/sessions
//	/users/{id}/hours
//	/users/{id}/months
//	/users/{id}/reports/{YYYY-MM}
//	/users/{id}/profile
func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := strings.Trim(string(ctx.Path()), "/")
	if path == "metrics" && s.metrics != nil {
		s.metrics(ctx)
		return
	}

	parts := strings.Split(path, "/")
	if len(parts) < 3 || parts[0] != "users" || parts[1] == "" {
		writeError(ctx, fasthttp.StatusNotFound, "route not found")
		return
	}
	userID, rest := parts[1], parts[2:]
	method := string(ctx.Method())

	switch {
	case len(rest) == 2 && rest[0] == "work" && rest[1] == "start" && method == fasthttp.MethodPost:
		s.handleStartWork(ctx, userID)
	case len(rest) == 2 && rest[0] == "work" && rest[1] == "stop" && method == fasthttp.MethodPost:
		s.handleStopWork(ctx, userID)
	case len(rest) == 1 && rest[0] == "sessions" && method == fasthttp.MethodPost:
		s.handleRecordSession(ctx, userID)
	case len(rest) == 1 && rest[0] == "sessions" && method == fasthttp.MethodGet:
		s.handleListSessions(ctx, userID)
	case len(rest) == 1 && rest[0] == "hours" && method == fasthttp.MethodGet:
		s.handleHours(ctx, userID)
	case len(rest) == 1 && rest[0] == "months" && method == fasthttp.MethodGet:
		s.handleMonths(ctx, userID)
	case len(rest) == 2 && rest[0] == "reports" && method == fasthttp.MethodGet:
		s.handleReport(ctx, userID, rest[1])
	case len(rest) == 1 && rest[0] == "profile" && method == fasthttp.MethodGet:
		s.handleGetProfile(ctx, userID)
	case len(rest) == 1 && rest[0] == "profile" && method == fasthttp.MethodPut:
		s.handleUpdateProfile(ctx, userID)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "route not found")
	}
}
