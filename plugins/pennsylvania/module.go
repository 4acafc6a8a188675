// Package pennsylvania implements the Pennsylvania resident and part-year
// return module (Form PA-40 simplified). Pennsylvania levies a flat rate with
// no standard deduction and no dependent exemptions.
package pennsylvania

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
	"taxcore/pkg/stateapi"
)

// Rate is the flat personal income tax rate, unchanged since 2004.
const Rate = 0.0307

// Module computes a simplified Form PA-40 from the federal result.
type Module struct {
	year int
}

// NewForYear constructs a module for a supported tax year.
func NewForYear(year int) (*Module, error) {
	switch year {
	case 2024, 2025:
		return &Module{year: year}, nil
	default:
		return nil, fmt.Errorf("pennsylvania: no parameters for tax year %d", year)
	}
}

// Code returns the two-letter state code.
func (*Module) Code() string { return "PA" }

// Name returns the display name.
func (*Module) Name() string { return "Pennsylvania" }

// Detail is the opaque per-state result attached to the normalized summary.
type Detail struct {
	Rate float64 `json:"rate"`
}

// Compute derives the Pennsylvania return from the federal result. The flat
// rate applies directly to apportioned federal AGI; there is no deduction and
// no credit layer.
func (m *Module) Compute(r *domain.TaxReturn, fed *domain.Form1040Result, cfg stateapi.Config) (domain.StateComputeResult, error) {
	g := cfg.Graph
	ratio := stateapi.ApportionmentRatio(cfg.Year, cfg.Residency.Status, cfg.Residency.MoveIn, cfg.Residency.MoveOut)

	agi := g.Computed("pa.agi", "Pennsylvania AGI",
		fmt.Sprintf("round(federal AGI x %.4f apportionment)", ratio),
		taxmath.MulRound(fed.AGI.Amount, ratio), fed.AGI)

	taxable := g.Computed("pa.taxable_income", "Pennsylvania taxable income",
		"max(0, PA AGI); no standard deduction",
		taxmath.Floor0(agi.Amount), agi)

	tax := g.Computed("pa.tax", "Pennsylvania tax",
		fmt.Sprintf("round(taxable income x %.4f flat rate)", Rate),
		taxmath.MulRound(taxable.Amount, Rate), taxable)

	credits := g.Computed("pa.credits", "Pennsylvania credits",
		"0 (no credits in scope)", 0)

	withholding := stateWithholding(g, r, cfg.Residency)
	overpaid := g.Computed("pa.overpaid", "Pennsylvania overpayment",
		"max(0, payments - tax)", taxmath.Floor0(withholding.Amount-tax.Amount), withholding, tax)
	owed := g.Computed("pa.amount_owed", "Pennsylvania amount owed",
		"max(0, tax - payments)", taxmath.Floor0(tax.Amount-withholding.Amount), tax, withholding)

	return domain.StateComputeResult{
		State:              "PA",
		Name:               "Pennsylvania",
		ApportionmentRatio: ratio,
		AGI:                agi,
		TaxableIncome:      taxable,
		Tax:                tax,
		Credits:            credits,
		Withholding:        withholding,
		Overpaid:           overpaid,
		AmountOwed:         owed,
		Detail:             Detail{Rate: Rate},
		TraceRootIDs:       []string{"pa.overpaid", "pa.amount_owed"},
	}, nil
}

// ReviewLayout groups the module's nodes for the review UI.
func (*Module) ReviewLayout() []stateapi.ReviewSection {
	return []stateapi.ReviewSection{
		{Title: "Income", NodeIDs: []string{"pa.agi", "pa.taxable_income"}},
		{Title: "Tax", NodeIDs: []string{"pa.tax"}},
		{Title: "Payments", NodeIDs: []string{"pa.withholding", "pa.overpaid", "pa.amount_owed"}},
	}
}

func stateWithholding(g *domain.TraceGraph, r *domain.TaxReturn, res domain.StateResidency) domain.TracedValue {
	var inputs []domain.TracedValue
	var total domain.Cents
	for _, w := range r.W2s {
		if w.StateCode != "PA" || w.StateWithholding == 0 {
			continue
		}
		v := g.Document(fmt.Sprintf("w2.%s.state_withholding", w.ID), fmt.Sprintf("PA withholding (%s)", w.Employer),
			w.ID, "state_withholding", w.StateWithholding, w.Confidence)
		inputs = append(inputs, v)
		total += v.Amount
	}
	if res.EstimatedPayments != 0 {
		v := g.Document("pa.estimated_payments", "Pennsylvania estimated payments",
			"return", "state_estimated_payments.PA", res.EstimatedPayments, 0)
		inputs = append(inputs, v)
		total += v.Amount
	}
	return g.Computed("pa.withholding", "Pennsylvania tax withheld and paid",
		"sum of W-2 state withholding and estimated payments", total, inputs...)
}
