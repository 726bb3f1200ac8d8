package cli

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

var (
	_ pflag.Value = (*dayValue)(nil)
	_ pflag.Value = (*monthValue)(nil)
	_ pflag.Value = (*timestampValue)(nil)
)

// dayValue is a YYYY-MM-DD flag. The zero value means "not given".
type dayValue struct {
	t   time.Time
	set bool
}

func (v *dayValue) String() string {
	if !v.set {
		return ""
	}
	return v.t.Format(domain.DayLayout)
}

func (v *dayValue) Set(s string) error {
	t, err := domain.ParseDay(s)
	if err != nil {
		return err
	}
	v.t, v.set = t, true
	return nil
}

func (v *dayValue) Type() string { return "YYYY-MM-DD" }

// or returns the flag value, or fallback when unset.
func (v *dayValue) or(fallback time.Time) time.Time {
	if v.set {
		return v.t
	}
	return fallback
}

// monthValue is a YYYY-MM flag.
type monthValue struct {
	ym  domain.YearMonth
	set bool
}

func (v *monthValue) String() string {
	if !v.set {
		return ""
	}
	return v.ym.String()
}

func (v *monthValue) Set(s string) error {
	ym, err := domain.ParseYearMonth(s)
	if err != nil {
		return err
	}
	v.ym, v.set = ym, true
	return nil
}

func (v *monthValue) Type() string { return "YYYY-MM" }

func (v *monthValue) or(fallback domain.YearMonth) domain.YearMonth {
	if v.set {
		return v.ym
	}
	return fallback
}

// timestampValue is a YYYY-MM-DDTHH:MM:SS flag.
type timestampValue struct {
	t   time.Time
	set bool
}

func (v *timestampValue) String() string {
	if !v.set {
		return ""
	}
	return v.t.Format(domain.TimestampLayout)
}

func (v *timestampValue) Set(s string) error {
	t, err := time.Parse(domain.TimestampLayout, s)
	if err != nil {
		return err
	}
	v.t, v.set = t, true
	return nil
}

func (v *timestampValue) Type() string { return "YYYY-MM-DDTHH:MM:SS" }

func (v *timestampValue) or(fallback time.Time) time.Time {
	if v.set {
		return v.t
	}
	return fallback
}
