package payroll

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidBracketTable = errors.New("invalid bracket table")
	ErrInvalidRules        = errors.New("invalid payroll rules")
)

// Bracket taxes the slice of an amount between the previous bracket's upper
// bound and its own UpperBound at Rate.
type Bracket struct {
	UpperBound float64
	Rate       float64
}

// BracketTable is a validated, ascending list of brackets whose last upper
// bound is +Inf. The zero value is not usable; build one with NewBracketTable.
type BracketTable struct {
	brackets []Bracket
}

// NewBracketTable validates brackets and returns a table owning a copy of them.
func NewBracketTable(brackets ...Bracket) (BracketTable, error) {
	if len(brackets) == 0 {
		return BracketTable{}, fmt.Errorf("no brackets: %w", ErrInvalidBracketTable)
	}
	prev := 0.0
	for i, b := range brackets {
		if math.IsNaN(b.UpperBound) || b.UpperBound <= prev {
			return BracketTable{}, fmt.Errorf("bracket %d: upper bound %v not above %v: %w",
				i, b.UpperBound, prev, ErrInvalidBracketTable)
		}
		if math.IsNaN(b.Rate) || b.Rate < 0 || b.Rate > 1 {
			return BracketTable{}, fmt.Errorf("bracket %d: rate %v outside [0, 1]: %w",
				i, b.Rate, ErrInvalidBracketTable)
		}
		prev = b.UpperBound
	}
	if !math.IsInf(prev, 1) {
		return BracketTable{}, fmt.Errorf("last upper bound %v is not open-ended: %w", prev, ErrInvalidBracketTable)
	}

	owned := make([]Bracket, len(brackets))
	copy(owned, brackets)
	return BracketTable{brackets: owned}, nil
}

// MustBracketTable is NewBracketTable for static tables; it panics on error.
func MustBracketTable(brackets ...Bracket) BracketTable {
	t, err := NewBracketTable(brackets...)
	if err != nil {
		panic(err)
	}
	return t
}

// Brackets returns a copy of the table's brackets.
func (t BracketTable) Brackets() []Bracket {
	out := make([]Bracket, len(t.brackets))
	copy(out, t.brackets)
	return out
}

// MarginalSum applies each bracket's rate only to the part of amount that
// falls inside it. An amount exactly on a boundary is taxed entirely at the
// lower bracket's rate. No rounding happens between brackets.
func (t BracketTable) MarginalSum(amount float64) float64 {
	var sum, prev float64
	for _, b := range t.brackets {
		if amount <= prev {
			break
		}
		sum += (math.Min(amount, b.UpperBound) - prev) * b.Rate
		prev = b.UpperBound
	}
	return sum
}
