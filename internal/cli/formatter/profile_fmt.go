package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shiftpay/internal/domain"
)

// FormatProfile renders a user's compensation profile.
func FormatProfile(p *domain.CompensationProfile) string {
	var b strings.Builder
	b.WriteString(Header("Profile "+p.UserID) + "\n")
	rows := [][]string{
		{"Hourly rate", FormatMoney(p.HourlyRate)},
		{"Fixed bonus", FormatMoney(p.FixedBonus)},
		{"Credit points", fmt.Sprintf("%.2f", p.CreditPoints)},
		{"Language", string(p.Language)},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Dim(fmt.Sprintf("%-14s", r[0])), r[1]))
	}
	return b.String()
}

// FieldSetText localizes the confirmation for an updated profile field.
func FieldSetText(lang domain.Language, field domain.ProfileField, value float64) string {
	switch field {
	case domain.FieldHourlyRate:
		return T(lang, MsgRateSet, FormatMoney(value))
	case domain.FieldFixedBonus:
		return T(lang, MsgBonusSet, FormatMoney(value))
	}
	return T(lang, MsgCreditsSet, value)
}
