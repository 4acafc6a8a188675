package taxmath

import (
	"testing"

	"taxcore/pkg/domain"
)

var testBrackets = []Bracket{
	{Rate: 0.10, Floor: 0},
	{Rate: 0.12, Floor: 11_925_00},
	{Rate: 0.22, Floor: 48_475_00},
	{Rate: 0.24, Floor: 103_350_00},
}

var testPrefBrackets = []Bracket{
	{Rate: 0, Floor: 0},
	{Rate: 0.15, Floor: 48_350_00},
	{Rate: 0.20, Floor: 533_400_00},
}

func TestValidateBrackets(t *testing.T) {
	if err := ValidateBrackets(testBrackets); err != nil {
		t.Fatalf("valid table rejected: %v", err)
	}
	cases := []struct {
		name string
		in   []Bracket
	}{
		{"empty", nil},
		{"nonzero first floor", []Bracket{{Rate: 0.1, Floor: 100}}},
		{"descending floors", []Bracket{{Rate: 0.1, Floor: 0}, {Rate: 0.2, Floor: 500}, {Rate: 0.3, Floor: 400}}},
		{"duplicate floors", []Bracket{{Rate: 0.1, Floor: 0}, {Rate: 0.2, Floor: 500}, {Rate: 0.3, Floor: 500}}},
		{"rate above one", []Bracket{{Rate: 1.5, Floor: 0}}},
		{"negative rate", []Bracket{{Rate: -0.1, Floor: 0}}},
	}
	for _, tc := range cases {
		if err := ValidateBrackets(tc.in); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestBracketTaxKnownAmounts(t *testing.T) {
	// 45,000 taxable: 10% of 11,925 + 12% of 33,075 = 1,192.50 + 3,969.00.
	if got := BracketTax(45_000_00, testBrackets); got != 5_161_50 {
		t.Fatalf("BracketTax(45000) = %d, want 516150", got)
	}
	if got := BracketTax(0, testBrackets); got != 0 {
		t.Fatalf("BracketTax(0) = %d", got)
	}
	if got := BracketTax(-5_000_00, testBrackets); got != 0 {
		t.Fatalf("BracketTax(-5000) = %d", got)
	}
	// Exactly at a boundary taxes only the lower brackets.
	if got := BracketTax(11_925_00, testBrackets); got != 1_192_50 {
		t.Fatalf("BracketTax at boundary = %d, want 119250", got)
	}
}

func TestBracketTaxMonotoneAndContinuous(t *testing.T) {
	var prev domain.Cents
	for income := domain.Cents(0); income <= 120_000_00; income += 7_31 {
		tax := BracketTax(income, testBrackets)
		if tax < prev {
			t.Fatalf("tax decreased at income %d: %d < %d", income, tax, prev)
		}
		prev = tax
	}
	// Continuity at a boundary: one cent of income never adds more than one
	// cent times the top rate, plus rounding.
	for _, edge := range []domain.Cents{11_925_00, 48_475_00, 103_350_00} {
		below := BracketTax(edge-1, testBrackets)
		above := BracketTax(edge+1, testBrackets)
		if above-below > 2 {
			t.Fatalf("discontinuity at %d: %d -> %d", edge, below, above)
		}
	}
}

func TestQDCGTaxNeverExceedsOrdinary(t *testing.T) {
	for taxable := domain.Cents(0); taxable <= 200_000_00; taxable += 9_173_00 {
		for pref := domain.Cents(0); pref <= taxable+10_000_00; pref += 13_507_00 {
			qdcg := QDCGTax(taxable, pref, testBrackets, testPrefBrackets)
			ordinary := BracketTax(taxable, testBrackets)
			if qdcg > ordinary {
				t.Fatalf("QDCGTax(%d, %d) = %d exceeds ordinary %d", taxable, pref, qdcg, ordinary)
			}
		}
	}
}

func TestQDCGTaxZeroRateSlice(t *testing.T) {
	// All income preferential and under the zero-rate ceiling: no tax.
	if got := QDCGTax(40_000_00, 40_000_00, testBrackets, testPrefBrackets); got != 0 {
		t.Fatalf("zero-rate slice taxed: %d", got)
	}
	// No preferential income degenerates to the ordinary computation.
	want := BracketTax(45_000_00, testBrackets)
	if got := QDCGTax(45_000_00, 0, testBrackets, testPrefBrackets); got != want {
		t.Fatalf("QDCGTax with no pref = %d, want %d", got, want)
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want domain.Cents
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{-0.49, 0},
		{-0.5, -1},
		{-1.5, -2},
	}
	for _, tc := range cases {
		if got := Round(tc.in); got != tc.want {
			t.Fatalf("Round(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMulRoundAndClampAndFloor0(t *testing.T) {
	if got := MulRound(92_350_00, 0.124); got != 11_451_40 {
		t.Fatalf("MulRound = %d", got)
	}
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp high = %d", got)
	}
	if got := Clamp(-5, 0, 3); got != 0 {
		t.Fatalf("Clamp low = %d", got)
	}
	if got := Floor0(-100); got != 0 {
		t.Fatalf("Floor0 = %d", got)
	}
	if got := Floor0(100); got != 100 {
		t.Fatalf("Floor0 positive = %d", got)
	}
}
