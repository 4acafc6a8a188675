package federal

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// ComputeFTC computes the simplified passive-category foreign tax credit.
// Creditable foreign tax and foreign-source income aggregate across every
// interest and dividend document reporting a nonzero foreign-tax amount. The
// limitation ratio is guarded: a zero taxable income or zero pre-credit tax
// yields a zero limitation, never a division fault. Excess foreign tax is
// reported but not carried forward.
func (c Constants) ComputeFTC(g *domain.TraceGraph, r *domain.TaxReturn, taxableIncome, taxBeforeCredits domain.TracedValue) *domain.FTCResult {
	var paidInputs, sourceInputs []domain.TracedValue
	var paidTotal, sourceTotal domain.Cents
	for _, d := range r.Interest {
		if d.ForeignTaxPaid == 0 {
			continue
		}
		p := g.Document(fmt.Sprintf("int.%s.foreign_tax", d.ID), fmt.Sprintf("Foreign tax paid (%s)", d.Payer),
			d.ID, "foreign_tax_paid", d.ForeignTaxPaid, d.Confidence)
		s := g.Document(fmt.Sprintf("int.%s.foreign_income", d.ID), fmt.Sprintf("Foreign-source income (%s)", d.Payer),
			d.ID, "foreign_source_income", d.ForeignSourceIncome, d.Confidence)
		paidInputs = append(paidInputs, p)
		sourceInputs = append(sourceInputs, s)
		paidTotal += p.Amount
		sourceTotal += s.Amount
	}
	for _, d := range r.Dividends {
		if d.ForeignTaxPaid == 0 {
			continue
		}
		p := g.Document(fmt.Sprintf("div.%s.foreign_tax", d.ID), fmt.Sprintf("Foreign tax paid (%s)", d.Payer),
			d.ID, "foreign_tax_paid", d.ForeignTaxPaid, d.Confidence)
		s := g.Document(fmt.Sprintf("div.%s.foreign_income", d.ID), fmt.Sprintf("Foreign-source income (%s)", d.Payer),
			d.ID, "foreign_source_income", d.ForeignSourceIncome, d.Confidence)
		paidInputs = append(paidInputs, p)
		sourceInputs = append(sourceInputs, s)
		paidTotal += p.Amount
		sourceTotal += s.Amount
	}

	paid := g.Computed("ftc.foreign_tax_paid", "Total creditable foreign tax",
		"sum of foreign tax across 1099 documents", paidTotal, paidInputs...)
	source := g.Computed("ftc.foreign_source_income", "Total foreign-source income",
		"sum of foreign-source income across 1099 documents", sourceTotal, sourceInputs...)

	var limitAmount domain.Cents
	if taxableIncome.Amount > 0 && taxBeforeCredits.Amount > 0 {
		numerator := min(source.Amount, taxableIncome.Amount)
		limitAmount = taxmath.Round(float64(taxBeforeCredits.Amount) * float64(numerator) / float64(taxableIncome.Amount))
	}
	limitation := g.Computed("ftc.limitation", "Foreign tax credit limitation",
		"round(US tax before credits x min(foreign income, taxable income) / taxable income); 0 when either is 0",
		limitAmount, taxBeforeCredits, source, taxableIncome)

	credit := g.Computed("ftc.credit", "Foreign tax credit",
		"min(foreign tax paid, limitation)",
		min(paid.Amount, limitation.Amount), paid, limitation)
	excess := g.Computed("ftc.excess", "Foreign tax paid in excess of limitation",
		"foreign tax paid - credit", paid.Amount-credit.Amount, paid, credit)

	return &domain.FTCResult{
		ForeignTaxPaid:      paid,
		ForeignSourceIncome: source,
		Limitation:          limitation,
		Credit:              credit,
		Excess:              excess,
		DirectElection:      paid.Amount > 0 && paid.Amount <= c.FTCDirectElectionThreshold.For(r.Status),
	}
}
