package payroll

import (
	"fmt"
	"math"
)

// Rules bundles the jurisdiction parameters the engine needs. Rules are
// loaded once at startup and treated as immutable afterwards.
type Rules struct {
	IncomeTax         BracketTable
	NationalInsurance BracketTable
	PensionRate       float64
	// CreditPointValue is the monthly tax reduction per credit point.
	CreditPointValue float64
}

// NewRules validates the scalar parameters. Both tables must already be
// built through NewBracketTable.
func NewRules(incomeTax, nationalInsurance BracketTable, pensionRate, creditPointValue float64) (Rules, error) {
	if len(incomeTax.brackets) == 0 || len(nationalInsurance.brackets) == 0 {
		return Rules{}, fmt.Errorf("missing bracket table: %w", ErrInvalidRules)
	}
	if math.IsNaN(pensionRate) || pensionRate < 0 || pensionRate > 1 {
		return Rules{}, fmt.Errorf("pension rate %v outside [0, 1]: %w", pensionRate, ErrInvalidRules)
	}
	if math.IsNaN(creditPointValue) || math.IsInf(creditPointValue, 0) || creditPointValue < 0 {
		return Rules{}, fmt.Errorf("credit point value %v: %w", creditPointValue, ErrInvalidRules)
	}
	return Rules{
		IncomeTax:         incomeTax,
		NationalInsurance: nationalInsurance,
		PensionRate:       pensionRate,
		CreditPointValue:  creditPointValue,
	}, nil
}

// DefaultRules returns the monthly Israeli tables the bot shipped with.
func DefaultRules() Rules {
	inf := math.Inf(1)
	return Rules{
		IncomeTax: MustBracketTable(
			Bracket{UpperBound: 6790, Rate: 0.10},
			Bracket{UpperBound: 9730, Rate: 0.14},
			Bracket{UpperBound: 15620, Rate: 0.20},
			Bracket{UpperBound: 21710, Rate: 0.31},
			Bracket{UpperBound: 45180, Rate: 0.35},
			Bracket{UpperBound: 58920, Rate: 0.47},
			Bracket{UpperBound: inf, Rate: 0.50},
		),
		NationalInsurance: MustBracketTable(
			Bracket{UpperBound: 7122, Rate: 0.031},
			Bracket{UpperBound: inf, Rate: 0.12},
		),
		PensionRate:      0.06,
		CreditPointValue: 233.00,
	}
}
