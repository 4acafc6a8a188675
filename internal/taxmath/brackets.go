// Package taxmath holds the pure money and bracket arithmetic shared by every
// schedule: progressive bracket tax, the preferential-rate stacking worksheet,
// and rounding helpers. All functions are total over nonnegative cents.
package taxmath

import (
	"fmt"
	"math"

	"taxcore/pkg/domain"
)

// Bracket is one row of a progressive rate table: everything from Floor up to
// the next bracket's floor is taxed at Rate. The top bracket has no ceiling.
type Bracket struct {
	Rate  float64      `json:"rate"`
	Floor domain.Cents `json:"floor"`
}

// ValidateBrackets rejects malformed tables: empty, first floor nonzero,
// floors not strictly ascending, or rates outside [0,1]. Year modules call
// this at registration so a bad table fails at process start, not mid-return.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("bracket table is empty")
	}
	if brackets[0].Floor != 0 {
		return fmt.Errorf("bracket table must start at floor 0, got %d", brackets[0].Floor)
	}
	for i, b := range brackets {
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("bracket %d rate %v outside [0,1]", i, b.Rate)
		}
		if i > 0 && b.Floor <= brackets[i-1].Floor {
			return fmt.Errorf("bracket %d floor %d not above previous floor %d", i, b.Floor, brackets[i-1].Floor)
		}
	}
	return nil
}

// BracketTax applies a progressive rate table to income. The per-bracket
// contributions accumulate unrounded and the sum is rounded exactly once, so
// bracket boundaries introduce no rounding drift. Income at or below zero
// yields zero.
func BracketTax(income domain.Cents, brackets []Bracket) domain.Cents {
	if income <= 0 {
		return 0
	}
	var tax float64
	for i, b := range brackets {
		if b.Floor >= income {
			break
		}
		top := income
		if i+1 < len(brackets) && brackets[i+1].Floor < income {
			top = brackets[i+1].Floor
		}
		tax += b.Rate * float64(top-b.Floor)
	}
	return Round(tax)
}

// QDCGTax implements the qualified dividends and capital gain worksheet.
// The preferential slice (long-term gains plus qualified dividends), capped at
// taxable income, stacks above the ordinary slice: each preferential bracket
// contributes min(taxable, ceiling) - max(ordinary, floor), floored at zero.
// The result never exceeds BracketTax(taxable, ordinaryBrackets).
func QDCGTax(taxable, preferential domain.Cents, ordinaryBrackets, preferentialBrackets []Bracket) domain.Cents {
	if taxable <= 0 {
		return 0
	}
	if preferential < 0 {
		preferential = 0
	}
	if preferential > taxable {
		preferential = taxable
	}
	ordinary := taxable - preferential

	var prefTax float64
	for i, b := range preferentialBrackets {
		top := taxable
		if i+1 < len(preferentialBrackets) && preferentialBrackets[i+1].Floor < taxable {
			top = preferentialBrackets[i+1].Floor
		}
		bottom := b.Floor
		if ordinary > bottom {
			bottom = ordinary
		}
		if top > bottom {
			prefTax += b.Rate * float64(top-bottom)
		}
	}

	tax := BracketTax(ordinary, ordinaryBrackets) + Round(prefTax)
	if ceiling := BracketTax(taxable, ordinaryBrackets); tax > ceiling {
		tax = ceiling
	}
	return tax
}

// Round converts an unrounded cents figure to integer cents, half away from
// zero.
func Round(x float64) domain.Cents {
	if x >= 0 {
		return domain.Cents(math.Floor(x + 0.5))
	}
	return domain.Cents(math.Ceil(x - 0.5))
}

// MulRound multiplies a cents amount by a rate and rounds once.
func MulRound(amount domain.Cents, rate float64) domain.Cents {
	return Round(float64(amount) * rate)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi domain.Cents) domain.Cents {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Floor0 floors a cents amount at zero.
func Floor0(v domain.Cents) domain.Cents {
	if v < 0 {
		return 0
	}
	return v
}
