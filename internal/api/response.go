package api

import (
	"errors"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

// errBadRequest marks malformed query parameters or bodies.
var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encoding response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionAlreadyOpen), errors.Is(err, domain.ErrNoOpenSession):
		return fasthttp.StatusConflict
	case errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrInvalidProfileValue),
		errors.Is(err, errBadRequest):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrProfileNotFound):
		return fasthttp.StatusNotFound
	}
	return fasthttp.StatusInternalServerError
}

func (s *Server) fail(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(err)
	if status == fasthttp.StatusInternalServerError {
		s.logger.Error("request_failed",
			slog.String("method", string(ctx.Method())),
			slog.String("path", string(ctx.Path())),
			slog.String("error", err.Error()))
		writeError(ctx, status, "internal error")
		return
	}
	writeError(ctx, status, err.Error())
}
