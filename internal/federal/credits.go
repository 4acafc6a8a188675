package federal

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// ComputeChildTaxCredit computes the child tax credit before the
// nonrefundable limit. The credit phases out by a fixed step per phase-out
// increment (or fraction of one) of MAGI above the filing-status threshold.
func (c Constants) ComputeChildTaxCredit(g *domain.TraceGraph, r *domain.TaxReturn, magi domain.TracedValue) domain.TracedValue {
	children := 0
	for _, d := range r.Dependents {
		if d.TIN != "" && d.Age < c.CTCChildAgeLimit {
			children++
		}
	}
	base := domain.Cents(children) * c.CTCPerChild
	threshold := c.CTCPhaseOutThreshold.For(r.Status)
	var reduction domain.Cents
	if excess := magi.Amount - threshold; excess > 0 {
		steps := (excess + c.CTCPhaseOutStep - 1) / c.CTCPhaseOutStep
		reduction = steps * c.CTCPhaseOutPerStep
	}
	return g.Computed("credits.ctc", "Child tax credit",
		fmt.Sprintf("%d children x %d, less %d per %d of MAGI over %d",
			children, c.CTCPerChild, c.CTCPhaseOutPerStep, c.CTCPhaseOutStep, threshold),
		taxmath.Floor0(base-reduction), magi)
}

// ComputeDependentCareCredit computes the child and dependent care credit:
// expenses capped by qualifying-person count and by earned income, at a rate
// sliding from the maximum down to the floor as AGI rises.
func (c Constants) ComputeDependentCareCredit(g *domain.TraceGraph, r *domain.TaxReturn, agi, earnedIncome domain.TracedValue) domain.TracedValue {
	if r.DependentCare == nil {
		return g.Computed("credits.dependent_care", "Child and dependent care credit",
			"0 (no dependent care expenses reported)", 0)
	}
	qualifying := 0
	for _, d := range r.Dependents {
		if d.Age < c.DependentCareAgeLimit {
			qualifying++
		}
	}
	if qualifying == 0 {
		return g.Computed("credits.dependent_care", "Child and dependent care credit",
			"0 (no qualifying persons)", 0)
	}
	expenses := g.Document("credits.dependent_care.expenses", "Dependent care expenses",
		"dependent_care", "expenses", r.DependentCare.Expenses, 0)

	cap := c.DependentCareExpenseCapOne
	if qualifying > 1 {
		cap = c.DependentCareExpenseCapMany
	}
	allowed := min(expenses.Amount, cap, taxmath.Floor0(earnedIncome.Amount))

	rate := c.DependentCareMaxRate
	if excess := agi.Amount - c.DependentCareRateFloorAGI; excess > 0 {
		steps := (excess + c.DependentCareRateStepAGI - 1) / c.DependentCareRateStepAGI
		rate -= float64(steps) * 0.01
		if rate < c.DependentCareMinRate {
			rate = c.DependentCareMinRate
		}
	}
	return g.Computed("credits.dependent_care", "Child and dependent care credit",
		fmt.Sprintf("round(min(expenses, cap %d, earned income) x %.0f%%)", cap, rate*100),
		taxmath.MulRound(allowed, rate), expenses, earnedIncome, agi)
}
