package payroll

import (
	"math"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

// Breakdown is the derived payroll for a number of worked hours. It is never
// persisted. NetPay always equals GrossPay - Pension - Insurance - IncomeTax.
type Breakdown struct {
	TotalHours   float64 `json:"total_hours"`
	GrossPay     float64 `json:"gross_pay"`
	Pension      float64 `json:"pension"`
	Insurance    float64 `json:"insurance"`
	RawIncomeTax float64 `json:"raw_income_tax"`
	CreditOffset float64 `json:"credit_offset"`
	IncomeTax    float64 `json:"income_tax"`
	NetPay       float64 `json:"net_pay"`
}

// Compute turns hours and a compensation profile into a Breakdown. Inputs are
// not clamped: negative hours or rates propagate into a negative gross.
func Compute(totalHours float64, profile *domain.CompensationProfile, rules Rules) Breakdown {
	gross := totalHours*profile.HourlyRate + profile.FixedBonus
	pension := gross * rules.PensionRate
	insurance := rules.NationalInsurance.MarginalSum(gross)
	rawTax := rules.IncomeTax.MarginalSum(gross)
	offset := profile.CreditPoints * rules.CreditPointValue
	tax := math.Max(0, rawTax-offset)

	return Breakdown{
		TotalHours:   totalHours,
		GrossPay:     gross,
		Pension:      pension,
		Insurance:    insurance,
		RawIncomeTax: rawTax,
		CreditOffset: offset,
		IncomeTax:    tax,
		NetPay:       gross - pension - insurance - tax,
	}
}

// Rounded returns a copy with every figure rounded to two decimals, for
// display. Net pay is recomputed from the rounded parts so the identity
// still holds on what the user sees.
func (b Breakdown) Rounded() Breakdown {
	r := Breakdown{
		TotalHours:   round2(b.TotalHours),
		GrossPay:     round2(b.GrossPay),
		Pension:      round2(b.Pension),
		Insurance:    round2(b.Insurance),
		RawIncomeTax: round2(b.RawIncomeTax),
		CreditOffset: round2(b.CreditOffset),
		IncomeTax:    round2(b.IncomeTax),
	}
	r.NetPay = round2(r.GrossPay - r.Pension - r.Insurance - r.IncomeTax)
	return r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
