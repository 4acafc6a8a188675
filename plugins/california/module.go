// Package california implements the California resident and part-year return
// module (Form 540 simplified).
package california

import (
	"fmt"

	"taxcore/internal/federal"
	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
	"taxcore/pkg/stateapi"
)

// Params holds the year-varying California parameters.
type Params struct {
	Year              int
	Brackets          federal.BracketsByStatus
	StandardDeduction federal.ByStatus
	ExemptionCredit   domain.Cents
	DependentCredit   domain.Cents
}

// Module computes a simplified Form 540 from the federal result.
type Module struct {
	params Params
}

// New constructs a module bound to the supplied parameters.
func New(p Params) (*Module, error) {
	if err := p.Brackets.Validate("california"); err != nil {
		return nil, err
	}
	return &Module{params: p}, nil
}

// NewForYear constructs a module for a supported tax year.
func NewForYear(year int) (*Module, error) {
	switch year {
	case 2024:
		return New(params2024())
	case 2025:
		return New(params2025())
	default:
		return nil, fmt.Errorf("california: no parameters for tax year %d", year)
	}
}

// Code returns the two-letter state code.
func (*Module) Code() string { return "CA" }

// Name returns the display name.
func (*Module) Name() string { return "California" }

// Detail is the opaque per-state result attached to the normalized summary.
type Detail struct {
	StandardDeduction domain.TracedValue `json:"standard_deduction"`
	ExemptionCredit   domain.TracedValue `json:"exemption_credit"`
	TaxBeforeCredits  domain.TracedValue `json:"tax_before_credits"`
}

// Compute derives the California return from the federal result. State AGI
// starts from federal AGI apportioned by residency; tax applies California's
// own brackets and the exemption credit offsets it.
func (m *Module) Compute(r *domain.TaxReturn, fed *domain.Form1040Result, cfg stateapi.Config) (domain.StateComputeResult, error) {
	g := cfg.Graph
	ratio := stateapi.ApportionmentRatio(cfg.Year, cfg.Residency.Status, cfg.Residency.MoveIn, cfg.Residency.MoveOut)

	agi := g.Computed("ca.agi", "California AGI",
		fmt.Sprintf("round(federal AGI x %.4f apportionment)", ratio),
		taxmath.MulRound(fed.AGI.Amount, ratio), fed.AGI)

	deduction := g.Computed("ca.standard_deduction", "California standard deduction",
		fmt.Sprintf("standard deduction (%s, %d)", r.Status, m.params.Year),
		m.params.StandardDeduction.For(r.Status))
	taxable := g.Computed("ca.taxable_income", "California taxable income",
		"max(0, CA AGI - standard deduction)",
		taxmath.Floor0(agi.Amount-deduction.Amount), agi, deduction)

	taxBefore := g.Computed("ca.tax_before_credits", "California tax before credits",
		"progressive California brackets on taxable income",
		taxmath.BracketTax(taxable.Amount, m.params.Brackets.For(r.Status)), taxable)

	exemptionAmount := m.params.ExemptionCredit
	if r.Status.Joint() {
		exemptionAmount *= 2
	}
	exemptionAmount += domain.Cents(len(r.Dependents)) * m.params.DependentCredit
	credits := g.Computed("ca.credits", "California exemption credits",
		fmt.Sprintf("personal exemption credit plus %d per dependent", m.params.DependentCredit),
		min(exemptionAmount, taxBefore.Amount), taxBefore)

	tax := g.Computed("ca.tax", "California tax",
		"max(0, tax before credits - exemption credits)",
		taxmath.Floor0(taxBefore.Amount-credits.Amount), taxBefore, credits)

	withholding := stateWithholding(g, r, "CA", cfg.Residency)
	overpaid := g.Computed("ca.overpaid", "California overpayment",
		"max(0, payments - tax)", taxmath.Floor0(withholding.Amount-tax.Amount), withholding, tax)
	owed := g.Computed("ca.amount_owed", "California amount owed",
		"max(0, tax - payments)", taxmath.Floor0(tax.Amount-withholding.Amount), tax, withholding)

	return domain.StateComputeResult{
		State:              "CA",
		Name:               "California",
		ApportionmentRatio: ratio,
		AGI:                agi,
		TaxableIncome:      taxable,
		Tax:                tax,
		Credits:            credits,
		Withholding:        withholding,
		Overpaid:           overpaid,
		AmountOwed:         owed,
		Detail: Detail{
			StandardDeduction: deduction,
			ExemptionCredit:   credits,
			TaxBeforeCredits:  taxBefore,
		},
		TraceRootIDs: []string{"ca.overpaid", "ca.amount_owed"},
	}, nil
}

// ReviewLayout groups the module's nodes for the review UI.
func (*Module) ReviewLayout() []stateapi.ReviewSection {
	return []stateapi.ReviewSection{
		{Title: "Income", NodeIDs: []string{"ca.agi", "ca.standard_deduction", "ca.taxable_income"}},
		{Title: "Tax and credits", NodeIDs: []string{"ca.tax_before_credits", "ca.credits", "ca.tax"}},
		{Title: "Payments", NodeIDs: []string{"ca.withholding", "ca.overpaid", "ca.amount_owed"}},
	}
}

// stateWithholding aggregates W-2 state withholding for the given state code
// plus state estimated payments into one payments node.
func stateWithholding(g *domain.TraceGraph, r *domain.TaxReturn, code string, res domain.StateResidency) domain.TracedValue {
	var inputs []domain.TracedValue
	var total domain.Cents
	for _, w := range r.W2s {
		if w.StateCode != code || w.StateWithholding == 0 {
			continue
		}
		v := g.Document(fmt.Sprintf("w2.%s.state_withholding", w.ID), fmt.Sprintf("%s withholding (%s)", code, w.Employer),
			w.ID, "state_withholding", w.StateWithholding, w.Confidence)
		inputs = append(inputs, v)
		total += v.Amount
	}
	if res.EstimatedPayments != 0 {
		v := g.Document(fmt.Sprintf("%s.estimated_payments", "ca"), "California estimated payments",
			"return", "state_estimated_payments.CA", res.EstimatedPayments, 0)
		inputs = append(inputs, v)
		total += v.Amount
	}
	return g.Computed("ca.withholding", "California tax withheld and paid",
		"sum of W-2 state withholding and estimated payments", total, inputs...)
}

func params2024() Params {
	return Params{
		Year: 2024,
		Brackets: singleAndJoint(
			[]taxmath.Bracket{
				{Rate: 0.01, Floor: 0},
				{Rate: 0.02, Floor: 10_756_00},
				{Rate: 0.04, Floor: 25_499_00},
				{Rate: 0.06, Floor: 40_245_00},
				{Rate: 0.08, Floor: 55_866_00},
				{Rate: 0.093, Floor: 70_606_00},
				{Rate: 0.103, Floor: 360_659_00},
				{Rate: 0.113, Floor: 432_787_00},
				{Rate: 0.123, Floor: 721_314_00},
			}),
		StandardDeduction: federal.ByStatus{
			Single:          5_540_00,
			MarriedJoint:    11_080_00,
			MarriedSeparate: 5_540_00,
			HeadOfHousehold: 11_080_00,
		},
		ExemptionCredit: 149_00,
		DependentCredit: 461_00,
	}
}

func params2025() Params {
	return Params{
		Year: 2025,
		Brackets: singleAndJoint(
			[]taxmath.Bracket{
				{Rate: 0.01, Floor: 0},
				{Rate: 0.02, Floor: 11_079_00},
				{Rate: 0.04, Floor: 26_264_00},
				{Rate: 0.06, Floor: 41_452_00},
				{Rate: 0.08, Floor: 57_542_00},
				{Rate: 0.093, Floor: 72_724_00},
				{Rate: 0.103, Floor: 371_479_00},
				{Rate: 0.113, Floor: 445_771_00},
				{Rate: 0.123, Floor: 742_954_00},
			}),
		StandardDeduction: federal.ByStatus{
			Single:          5_706_00,
			MarriedJoint:    11_412_00,
			MarriedSeparate: 5_706_00,
			HeadOfHousehold: 11_412_00,
		},
		ExemptionCredit: 153_00,
		DependentCredit: 475_00,
	}
}

// singleAndJoint doubles the single-table floors for joint filers, which is
// how California publishes its schedules.
func singleAndJoint(single []taxmath.Bracket) federal.BracketsByStatus {
	joint := make([]taxmath.Bracket, len(single))
	for i, b := range single {
		joint[i] = taxmath.Bracket{Rate: b.Rate, Floor: b.Floor * 2}
	}
	return federal.BracketsByStatus{
		Single:          single,
		MarriedJoint:    joint,
		MarriedSeparate: single,
		HeadOfHousehold: joint,
	}
}
