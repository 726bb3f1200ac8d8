package payroll

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk YAML shape. A bracket without up_to (or with
// up_to: .inf) is the open-ended top bracket.
type rulesFile struct {
	IncomeTax         []bracketYAML `yaml:"income_tax"`
	NationalInsurance []bracketYAML `yaml:"national_insurance"`
	PensionRate       *float64      `yaml:"pension_rate"`
	CreditPointValue  *float64      `yaml:"credit_point_value"`
}

type bracketYAML struct {
	UpTo *float64 `yaml:"up_to,omitempty"`
	Rate float64  `yaml:"rate"`
}

// LoadRules reads a YAML rules file. Missing scalar fields fall back to
// DefaultRules; both tables are required.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file: %w", err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes and validates YAML rules.
func ParseRules(data []byte) (Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Rules{}, fmt.Errorf("parsing rules YAML: %w", err)
	}

	incomeTax, err := NewBracketTable(toBrackets(f.IncomeTax)...)
	if err != nil {
		return Rules{}, fmt.Errorf("income_tax: %w", err)
	}
	ni, err := NewBracketTable(toBrackets(f.NationalInsurance)...)
	if err != nil {
		return Rules{}, fmt.Errorf("national_insurance: %w", err)
	}

	defaults := DefaultRules()
	pension := defaults.PensionRate
	if f.PensionRate != nil {
		pension = *f.PensionRate
	}
	credit := defaults.CreditPointValue
	if f.CreditPointValue != nil {
		credit = *f.CreditPointValue
	}
	return NewRules(incomeTax, ni, pension, credit)
}

func toBrackets(in []bracketYAML) []Bracket {
	out := make([]Bracket, 0, len(in))
	for _, b := range in {
		upper := math.Inf(1)
		if b.UpTo != nil {
			upper = *b.UpTo
		}
		out = append(out, Bracket{UpperBound: upper, Rate: b.Rate})
	}
	return out
}
