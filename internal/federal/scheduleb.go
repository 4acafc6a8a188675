package federal

import (
	"fmt"

	"taxcore/pkg/domain"
)

// ComputeScheduleB aggregates taxable interest and ordinary dividends across
// every 1099 document, registering one raw-input node per box read, and flags
// whether either total crosses the filing threshold.
func (c Constants) ComputeScheduleB(g *domain.TraceGraph, r *domain.TaxReturn) *domain.ScheduleBResult {
	var interestInputs []domain.TracedValue
	var interestTotal domain.Cents
	for _, d := range r.Interest {
		v := g.Document(fmt.Sprintf("int.%s.interest", d.ID), fmt.Sprintf("Interest from %s", d.Payer),
			d.ID, "interest", d.Interest, d.Confidence)
		interestInputs = append(interestInputs, v)
		interestTotal += v.Amount
	}
	interest := g.Computed("scheduleB.line4", "Taxable interest", "sum of 1099-INT interest",
		interestTotal, interestInputs...)

	var dividendInputs []domain.TracedValue
	var dividendTotal domain.Cents
	for _, d := range r.Dividends {
		v := g.Document(fmt.Sprintf("div.%s.ordinary", d.ID), fmt.Sprintf("Ordinary dividends from %s", d.Payer),
			d.ID, "ordinary_dividends", d.OrdinaryDividends, d.Confidence)
		dividendInputs = append(dividendInputs, v)
		dividendTotal += v.Amount
	}
	dividends := g.Computed("scheduleB.line6", "Ordinary dividends", "sum of 1099-DIV ordinary dividends",
		dividendTotal, dividendInputs...)

	return &domain.ScheduleBResult{
		Interest:          interest,
		OrdinaryDividends: dividends,
		Required:          interest.Amount > c.ScheduleBThreshold || dividends.Amount > c.ScheduleBThreshold,
	}
}
