package dialog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

// ErrorKind classifies why user input was rejected.
type ErrorKind int

const (
	KindInvalidNumber ErrorKind = iota
	KindInvalidDate
	KindInvalidFormat
	KindInvalidInterval
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidNumber:
		return "invalid_number"
	case KindInvalidDate:
		return "invalid_date"
	case KindInvalidFormat:
		return "invalid_format"
	case KindInvalidInterval:
		return "invalid_interval"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is returned for every rejected input. Err holds the underlying
// cause when there is one.
type ParseError struct {
	Kind  ErrorKind
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	timeRangePattern     = regexp.MustCompile(`^(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})$`)
	manualSessionPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})$`)
	decimalPattern       = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
	decimalCommaPattern  = regexp.MustCompile(`^\d+,\d{1,2}$`)
)

// ParseAmount parses a non-negative decimal number in plain notation. A
// decimal comma is accepted when it is the only separator and one or two
// digits follow it; thousands separators, exponents and hex forms are
// rejected.
func ParseAmount(s string) (float64, error) {
	in := strings.TrimSpace(s)
	switch {
	case decimalPattern.MatchString(in):
	case decimalCommaPattern.MatchString(in):
		in = strings.Replace(in, ",", ".", 1)
	default:
		return 0, &ParseError{Kind: KindInvalidNumber, Input: s}
	}
	v, err := strconv.ParseFloat(in, 64)
	if err != nil {
		return 0, &ParseError{Kind: KindInvalidNumber, Input: s, Err: err}
	}
	if math.IsInf(v, 0) {
		return 0, &ParseError{Kind: KindInvalidNumber, Input: s, Err: domain.ErrInvalidProfileValue}
	}
	return v, nil
}

// ParseDay parses "YYYY-MM-DD".
func ParseDay(s string) (time.Time, error) {
	day, err := domain.ParseDay(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ParseError{Kind: KindInvalidDate, Input: s, Err: err}
	}
	return day, nil
}

// ParseTimeRange parses "HH:MM - HH:MM" as an interval on day.
func ParseTimeRange(day time.Time, s string) (start, end time.Time, err error) {
	m := timeRangePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, time.Time{}, &ParseError{Kind: KindInvalidFormat, Input: s}
	}
	return intervalOn(day, m[1], m[2], s)
}

// ParseManualSession parses "YYYY-MM-DD HH:MM - HH:MM".
func ParseManualSession(s string) (start, end time.Time, err error) {
	m := manualSessionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, time.Time{}, &ParseError{Kind: KindInvalidFormat, Input: s}
	}
	day, err := domain.ParseDay(m[1])
	if err != nil {
		return time.Time{}, time.Time{}, &ParseError{Kind: KindInvalidDate, Input: s, Err: err}
	}
	return intervalOn(day, m[2], m[3], s)
}

func intervalOn(day time.Time, from, to, input string) (time.Time, time.Time, error) {
	start, err := clockOn(day, from)
	if err != nil {
		return time.Time{}, time.Time{}, &ParseError{Kind: KindInvalidFormat, Input: input, Err: err}
	}
	end, err := clockOn(day, to)
	if err != nil {
		return time.Time{}, time.Time{}, &ParseError{Kind: KindInvalidFormat, Input: input, Err: err}
	}
	if err := domain.ValidateInterval(start, end); err != nil {
		return time.Time{}, time.Time{}, &ParseError{Kind: KindInvalidInterval, Input: input, Err: err}
	}
	return start, end, nil
}

func clockOn(day time.Time, hhmm string) (time.Time, error) {
	c, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}
