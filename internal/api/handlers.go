package api

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/alexanderramin/shiftpay/internal/domain"
	"github.com/alexanderramin/shiftpay/internal/payroll"
	"github.com/alexanderramin/shiftpay/internal/service"
)

type sessionResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at,omitempty"`
	Hours     float64 `json:"hours"`
}

func toSessionResponse(ws *domain.WorkSession) sessionResponse {
	resp := sessionResponse{
		ID:        ws.ID,
		UserID:    ws.UserID,
		StartedAt: ws.StartedAt.Format(domain.TimestampLayout),
		Hours:     ws.Hours(),
	}
	if ws.EndedAt != nil {
		end := ws.EndedAt.Format(domain.TimestampLayout)
		resp.EndedAt = &end
	}
	return resp
}

type manualSessionRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type hoursResponse struct {
	UserID string  `json:"user_id"`
	Day    string  `json:"day,omitempty"`
	Month  string  `json:"month,omitempty"`
	Hours  float64 `json:"hours"`
}

type monthsResponse struct {
	UserID string   `json:"user_id"`
	Months []string `json:"months"`
}

type reportResponse struct {
	UserID    string            `json:"user_id"`
	Month     string            `json:"month"`
	Breakdown payroll.Breakdown `json:"breakdown"`
}

type profileResponse struct {
	UserID       string  `json:"user_id"`
	HourlyRate   float64 `json:"hourly_rate"`
	FixedBonus   float64 `json:"fixed_bonus"`
	CreditPoints float64 `json:"credit_points"`
	Language     string  `json:"language"`
}

func toProfileResponse(p *domain.CompensationProfile) profileResponse {
	return profileResponse{
		UserID:       p.UserID,
		HourlyRate:   p.HourlyRate,
		FixedBonus:   p.FixedBonus,
		CreditPoints: p.CreditPoints,
		Language:     string(p.Language),
	}
}

// profileUpdate is a partial update; absent fields are left unchanged.
type profileUpdate struct {
	HourlyRate   *float64 `json:"hourly_rate"`
	FixedBonus   *float64 `json:"fixed_bonus"`
	CreditPoints *float64 `json:"credit_points"`
	Language     *string  `json:"language"`
}

func (u profileUpdate) toService() service.ProfileUpdate {
	out := service.ProfileUpdate{Fields: u.fields()}
	if u.Language != nil {
		lang := domain.Language(*u.Language)
		out.Language = &lang
	}
	return out
}

func (u profileUpdate) fields() map[domain.ProfileField]float64 {
	out := make(map[domain.ProfileField]float64, 3)
	if u.HourlyRate != nil {
		out[domain.FieldHourlyRate] = *u.HourlyRate
	}
	if u.FixedBonus != nil {
		out[domain.FieldFixedBonus] = *u.FixedBonus
	}
	if u.CreditPoints != nil {
		out[domain.FieldCreditPoints] = *u.CreditPoints
	}
	return out
}

// instant reads the optional ?at= timestamp, defaulting to the server clock.
func (s *Server) instant(ctx *fasthttp.RequestCtx) (time.Time, error) {
	raw := ctx.QueryArgs().Peek("at")
	if len(raw) == 0 {
		return s.now(), nil
	}
	return parseTimestamp(string(raw))
}

func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse(domain.TimestampLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q (want %s)", errBadRequest, v, domain.TimestampLayout)
	}
	return t, nil
}

func (s *Server) handleStartWork(ctx *fasthttp.RequestCtx, userID string) {
	at, err := s.instant(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ws, err := s.ledger.StartWork(s.baseCtx, userID, at)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, toSessionResponse(ws))
}

func (s *Server) handleStopWork(ctx *fasthttp.RequestCtx, userID string) {
	at, err := s.instant(ctx)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ws, err := s.ledger.StopWork(s.baseCtx, userID, at)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, toSessionResponse(ws))
}

func (s *Server) handleRecordSession(ctx *fasthttp.RequestCtx, userID string) {
	var req manualSessionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.fail(ctx, fmt.Errorf("%w: invalid body: %v", errBadRequest, err))
		return
	}
	start, err := parseTimestamp(req.Start)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	end, err := parseTimestamp(req.End)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	ws, err := s.ledger.RecordManualSession(s.baseCtx, userID, start, end)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, toSessionResponse(ws))
}

func (s *Server) handleListSessions(ctx *fasthttp.RequestCtx, userID string) {
	raw := string(ctx.QueryArgs().Peek("day"))
	if raw == "" {
		s.fail(ctx, fmt.Errorf("%w: day is required", errBadRequest))
		return
	}
	day, err := domain.ParseDay(raw)
	if err != nil {
		s.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	sessions, err := s.ledger.SessionsForDay(s.baseCtx, userID, day)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	out := make([]sessionResponse, 0, len(sessions))
	for _, ws := range sessions {
		out = append(out, toSessionResponse(ws))
	}
	writeJSON(ctx, fasthttp.StatusOK, out)
}

func (s *Server) handleHours(ctx *fasthttp.RequestCtx, userID string) {
	args := ctx.QueryArgs()
	dayRaw, monthRaw := string(args.Peek("day")), string(args.Peek("month"))

	switch {
	case dayRaw != "" && monthRaw == "":
		day, err := domain.ParseDay(dayRaw)
		if err != nil {
			s.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		hours, err := s.ledger.HoursForDay(s.baseCtx, userID, day)
		if err != nil {
			s.fail(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, hoursResponse{UserID: userID, Day: dayRaw, Hours: hours})
	case monthRaw != "" && dayRaw == "":
		ym, err := domain.ParseYearMonth(monthRaw)
		if err != nil {
			s.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		hours, err := s.ledger.HoursForMonth(s.baseCtx, userID, ym)
		if err != nil {
			s.fail(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, hoursResponse{UserID: userID, Month: ym.String(), Hours: hours})
	default:
		s.fail(ctx, fmt.Errorf("%w: exactly one of day or month is required", errBadRequest))
	}
}

func (s *Server) handleMonths(ctx *fasthttp.RequestCtx, userID string) {
	resp := monthsResponse{UserID: userID, Months: []string{}}
	for ym, err := range s.ledger.ActiveMonths(s.baseCtx, userID) {
		if err != nil {
			s.fail(ctx, err)
			return
		}
		resp.Months = append(resp.Months, ym.String())
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (s *Server) handleReport(ctx *fasthttp.RequestCtx, userID, month string) {
	ym, err := domain.ParseYearMonth(month)
	if err != nil {
		s.fail(ctx, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	report, err := s.reports.BuildMonthlyReport(s.baseCtx, userID, ym)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, reportResponse{
		UserID:    report.UserID,
		Month:     report.Month,
		Breakdown: report.Breakdown.Rounded(),
	})
}

func (s *Server) handleGetProfile(ctx *fasthttp.RequestCtx, userID string) {
	p, err := s.profiles.Get(s.baseCtx, userID)
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, toProfileResponse(p))
}

// handleUpdateProfile applies the supplied fields in one transaction, so a
// bad value or a failed write leaves the profile untouched.
func (s *Server) handleUpdateProfile(ctx *fasthttp.RequestCtx, userID string) {
	var upd profileUpdate
	if err := json.Unmarshal(ctx.PostBody(), &upd); err != nil {
		s.fail(ctx, fmt.Errorf("%w: invalid body: %v", errBadRequest, err))
		return
	}

	p, err := s.profiles.Update(s.baseCtx, userID, upd.toService())
	if err != nil {
		s.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, toProfileResponse(p))
}
