// Package newyork implements the New York resident and part-year return
// module (Form IT-201 simplified).
package newyork

import (
	"fmt"

	"taxcore/internal/federal"
	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
	"taxcore/pkg/stateapi"
)

// Params holds the year-varying New York parameters.
type Params struct {
	Year              int
	Brackets          federal.BracketsByStatus
	StandardDeduction federal.ByStatus

	// Household credit is a flat credit for filers below an AGI ceiling,
	// plus a per-exemption amount.
	HouseholdCreditCeiling federal.ByStatus
	HouseholdCreditBase    domain.Cents
	HouseholdCreditPerDep  domain.Cents
}

// Module computes a simplified Form IT-201 from the federal result.
type Module struct {
	params Params
}

// New constructs a module bound to the supplied parameters.
func New(p Params) (*Module, error) {
	if err := p.Brackets.Validate("newyork"); err != nil {
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
		return nil, fmt.Errorf("newyork: no parameters for tax year %d", year)
	}
}

// Code returns the two-letter state code.
func (*Module) Code() string { return "NY" }

// Name returns the display name.
func (*Module) Name() string { return "New York" }

// Detail is the opaque per-state result attached to the normalized summary.
type Detail struct {
	StandardDeduction domain.TracedValue `json:"standard_deduction"`
	HouseholdCredit   domain.TracedValue `json:"household_credit"`
	TaxBeforeCredits  domain.TracedValue `json:"tax_before_credits"`
}

// Compute derives the New York return from the federal result. New York
// starts from federal AGI apportioned by residency, applies its own standard
// deduction and brackets, and offsets tax with the household credit.
func (m *Module) Compute(r *domain.TaxReturn, fed *domain.Form1040Result, cfg stateapi.Config) (domain.StateComputeResult, error) {
	g := cfg.Graph
	ratio := stateapi.ApportionmentRatio(cfg.Year, cfg.Residency.Status, cfg.Residency.MoveIn, cfg.Residency.MoveOut)

	agi := g.Computed("ny.agi", "New York AGI",
		fmt.Sprintf("round(federal AGI x %.4f apportionment)", ratio),
		taxmath.MulRound(fed.AGI.Amount, ratio), fed.AGI)

	deduction := g.Computed("ny.standard_deduction", "New York standard deduction",
		fmt.Sprintf("standard deduction (%s, %d)", r.Status, m.params.Year),
		m.params.StandardDeduction.For(r.Status))
	taxable := g.Computed("ny.taxable_income", "New York taxable income",
		"max(0, NY AGI - standard deduction)",
		taxmath.Floor0(agi.Amount-deduction.Amount), agi, deduction)

	taxBefore := g.Computed("ny.tax_before_credits", "New York tax before credits",
		"progressive New York brackets on taxable income",
		taxmath.BracketTax(taxable.Amount, m.params.Brackets.For(r.Status)), taxable)

	credits := g.Computed("ny.credits", "New York household credit",
		"flat credit plus per-dependent amount when AGI is under the ceiling",
		min(m.householdCredit(r, agi.Amount), taxBefore.Amount), agi, taxBefore)

	tax := g.Computed("ny.tax", "New York tax",
		"max(0, tax before credits - household credit)",
		taxmath.Floor0(taxBefore.Amount-credits.Amount), taxBefore, credits)

	withholding := stateWithholding(g, r, cfg.Residency)
	overpaid := g.Computed("ny.overpaid", "New York overpayment",
		"max(0, payments - tax)", taxmath.Floor0(withholding.Amount-tax.Amount), withholding, tax)
	owed := g.Computed("ny.amount_owed", "New York amount owed",
		"max(0, tax - payments)", taxmath.Floor0(tax.Amount-withholding.Amount), tax, withholding)

	return domain.StateComputeResult{
		State:              "NY",
		Name:               "New York",
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
			HouseholdCredit:   credits,
			TaxBeforeCredits:  taxBefore,
		},
		TraceRootIDs: []string{"ny.overpaid", "ny.amount_owed"},
	}, nil
}

// householdCredit returns the unclamped credit amount: zero above the AGI
// ceiling, otherwise the base plus a per-dependent amount.
func (m *Module) householdCredit(r *domain.TaxReturn, agi domain.Cents) domain.Cents {
	if agi > m.params.HouseholdCreditCeiling.For(r.Status) {
		return 0
	}
	return m.params.HouseholdCreditBase + domain.Cents(len(r.Dependents))*m.params.HouseholdCreditPerDep
}

// ReviewLayout groups the module's nodes for the review UI.
func (*Module) ReviewLayout() []stateapi.ReviewSection {
	return []stateapi.ReviewSection{
		{Title: "Income", NodeIDs: []string{"ny.agi", "ny.standard_deduction", "ny.taxable_income"}},
		{Title: "Tax and credits", NodeIDs: []string{"ny.tax_before_credits", "ny.credits", "ny.tax"}},
		{Title: "Payments", NodeIDs: []string{"ny.withholding", "ny.overpaid", "ny.amount_owed"}},
	}
}

func stateWithholding(g *domain.TraceGraph, r *domain.TaxReturn, res domain.StateResidency) domain.TracedValue {
	var inputs []domain.TracedValue
	var total domain.Cents
	for _, w := range r.W2s {
		if w.StateCode != "NY" || w.StateWithholding == 0 {
			continue
		}
		v := g.Document(fmt.Sprintf("w2.%s.state_withholding", w.ID), fmt.Sprintf("NY withholding (%s)", w.Employer),
			w.ID, "state_withholding", w.StateWithholding, w.Confidence)
		inputs = append(inputs, v)
		total += v.Amount
	}
	if res.EstimatedPayments != 0 {
		v := g.Document("ny.estimated_payments", "New York estimated payments",
			"return", "state_estimated_payments.NY", res.EstimatedPayments, 0)
		inputs = append(inputs, v)
		total += v.Amount
	}
	return g.Computed("ny.withholding", "New York tax withheld and paid",
		"sum of W-2 state withholding and estimated payments", total, inputs...)
}

func params2024() Params {
	single := []taxmath.Bracket{
		{Rate: 0.04, Floor: 0},
		{Rate: 0.045, Floor: 8_500_00},
		{Rate: 0.0525, Floor: 11_700_00},
		{Rate: 0.055, Floor: 13_900_00},
		{Rate: 0.06, Floor: 80_650_00},
		{Rate: 0.0685, Floor: 215_400_00},
		{Rate: 0.0965, Floor: 1_077_550_00},
		{Rate: 0.103, Floor: 5_000_000_00},
		{Rate: 0.109, Floor: 25_000_000_00},
	}
	joint := []taxmath.Bracket{
		{Rate: 0.04, Floor: 0},
		{Rate: 0.045, Floor: 17_150_00},
		{Rate: 0.0525, Floor: 23_600_00},
		{Rate: 0.055, Floor: 27_900_00},
		{Rate: 0.06, Floor: 161_550_00},
		{Rate: 0.0685, Floor: 323_200_00},
		{Rate: 0.0965, Floor: 2_155_350_00},
		{Rate: 0.103, Floor: 5_000_000_00},
		{Rate: 0.109, Floor: 25_000_000_00},
	}
	hoh := []taxmath.Bracket{
		{Rate: 0.04, Floor: 0},
		{Rate: 0.045, Floor: 12_800_00},
		{Rate: 0.0525, Floor: 17_650_00},
		{Rate: 0.055, Floor: 20_900_00},
		{Rate: 0.06, Floor: 107_650_00},
		{Rate: 0.0685, Floor: 269_300_00},
		{Rate: 0.0965, Floor: 1_616_450_00},
		{Rate: 0.103, Floor: 5_000_000_00},
		{Rate: 0.109, Floor: 25_000_000_00},
	}
	return Params{
		Year: 2024,
		Brackets: federal.BracketsByStatus{
			Single:          single,
			MarriedJoint:    joint,
			MarriedSeparate: single,
			HeadOfHousehold: hoh,
		},
		StandardDeduction: federal.ByStatus{
			Single:          8_000_00,
			MarriedJoint:    16_050_00,
			MarriedSeparate: 8_000_00,
			HeadOfHousehold: 11_200_00,
		},
		HouseholdCreditCeiling: federal.ByStatus{
			Single:          28_000_00,
			MarriedJoint:    32_000_00,
			MarriedSeparate: 16_000_00,
			HeadOfHousehold: 32_000_00,
		},
		HouseholdCreditBase:   75_00,
		HouseholdCreditPerDep: 15_00,
	}
}

func params2025() Params {
	// New York did not reindex brackets or the standard deduction for 2025;
	// only the credit ceiling carries forward unchanged as well.
	p := params2024()
	p.Year = 2025
	return p
}
