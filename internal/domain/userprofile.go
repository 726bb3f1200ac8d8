package domain

import (
	"fmt"
	"math"
	"strings"
)

// CompensationProfile holds the per-user inputs to the payroll engine.
type CompensationProfile struct {
	UserID       string
	HourlyRate   float64
	FixedBonus   float64
	CreditPoints float64
	Language     Language
}

// DefaultProfile returns the zero-valued profile a user starts with.
func DefaultProfile(userID string) *CompensationProfile {
	return &CompensationProfile{UserID: userID, Language: LanguageEnglish}
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// ParseLanguage accepts a language code, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageRussian:
		return LanguageRussian, nil
	}
	return "", fmt.Errorf("unsupported language %q (want en or ru)", s)
}

// ProfileField names a numeric field of CompensationProfile that can be updated.
type ProfileField string

const (
	FieldHourlyRate   ProfileField = "hourly_rate"
	FieldFixedBonus   ProfileField = "fixed_bonus"
	FieldCreditPoints ProfileField = "credit_points"
)

// ProfileFields lists the updatable numeric fields in display order.
var ProfileFields = []ProfileField{FieldHourlyRate, FieldFixedBonus, FieldCreditPoints}

// ParseProfileField maps user-facing names (including the short aliases
// rate, bonus and credits) onto a ProfileField.
func ParseProfileField(s string) (ProfileField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rate", "hourly_rate", "hourly-rate":
		return FieldHourlyRate, nil
	case "bonus", "fixed_bonus", "fixed-bonus":
		return FieldFixedBonus, nil
	case "credits", "credit_points", "credit-points":
		return FieldCreditPoints, nil
	}
	return "", fmt.Errorf("unknown profile field %q (want rate, bonus or credits)", s)
}

// ValidateProfileValue rejects negative and non-finite values.
func ValidateProfileValue(field ProfileField, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s = %v: %w", field, v, ErrInvalidProfileValue)
	}
	return nil
}

// Set assigns v to the named field after validation.
func (p *CompensationProfile) Set(field ProfileField, v float64) error {
	if err := ValidateProfileValue(field, v); err != nil {
		return err
	}
	switch field {
	case FieldHourlyRate:
		p.HourlyRate = v
	case FieldFixedBonus:
		p.FixedBonus = v
	case FieldCreditPoints:
		p.CreditPoints = v
	default:
		return fmt.Errorf("unknown profile field %q", field)
	}
	return nil
}

// Get returns the value of the named field.
func (p *CompensationProfile) Get(field ProfileField) float64 {
	switch field {
	case FieldHourlyRate:
		return p.HourlyRate
	case FieldFixedBonus:
		return p.FixedBonus
	case FieldCreditPoints:
		return p.CreditPoints
	}
	return 0
}
