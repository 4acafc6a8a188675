package federal

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// ComputeScheduleA computes itemized deductions. It returns nil when the
// return carries no itemized detail; the orchestrator then compares nothing
// against the standard deduction. nii is the net investment income figure the
// investment-interest cap rides on.
func (c Constants) ComputeScheduleA(g *domain.TraceGraph, r *domain.TaxReturn, agi, magi, nii domain.TracedValue) *domain.ScheduleAResult {
	it := r.Itemized
	if it == nil {
		return nil
	}
	const doc = "itemized"

	// Medical: expenses above the AGI floor.
	expenses := g.Document("scheduleA.line1", "Medical and dental expenses", doc, "medical_expenses", it.MedicalExpenses, 0)
	floor := g.Computed("scheduleA.line3", "AGI medical floor",
		fmt.Sprintf("round(AGI x %.1f%%)", c.MedicalAGIFloor*100),
		taxmath.MulRound(agi.Amount, c.MedicalAGIFloor), agi)
	medical := g.Computed("scheduleA.line4", "Deductible medical expenses",
		"max(0, expenses - floor)",
		taxmath.Floor0(expenses.Amount-floor.Amount), expenses, floor)

	// SALT: larger of income or sales tax, plus property taxes, against a
	// phase-out-adjusted cap.
	incomeTax := g.Document("scheduleA.line5a.income", "State and local income taxes", doc, "state_income_tax_paid", it.StateIncomeTaxPaid, 0)
	salesTax := g.Document("scheduleA.line5a.sales", "State and local sales taxes", doc, "state_sales_tax_paid", it.StateSalesTaxPaid, 0)
	realEstate := g.Document("scheduleA.line5b", "Real estate taxes", doc, "real_estate_taxes", it.RealEstateTaxes, 0)
	personalProp := g.Document("scheduleA.line5c", "Personal property taxes", doc, "personal_property_taxes", it.PersonalPropertyTaxes, 0)
	raw := g.Computed("scheduleA.line5d", "State and local taxes paid",
		"max(income tax, sales tax) + real estate + personal property",
		max(incomeTax.Amount, salesTax.Amount)+realEstate.Amount+personalProp.Amount,
		incomeTax, salesTax, realEstate, personalProp)

	baseCap := c.SALTBaseCap.For(r.Status)
	capFloor := c.SALTFloor.For(r.Status)
	threshold := c.SALTPhaseOutThreshold.For(r.Status)
	reduction := taxmath.MulRound(taxmath.Floor0(magi.Amount-threshold), c.SALTPhaseOutRate)
	effectiveCap := g.Computed("scheduleA.salt_cap", "SALT deduction cap",
		fmt.Sprintf("max(floor, %d - round(%.0f%% x max(0, MAGI - %d)))", baseCap, c.SALTPhaseOutRate*100, threshold),
		max(capFloor, baseCap-reduction), magi)
	salt := g.Computed("scheduleA.line5e", "State and local tax deduction",
		"min(taxes paid, cap)",
		min(raw.Amount, effectiveCap.Amount), raw, effectiveCap)

	// Mortgage interest, prorated when the loan exceeds the statutory limit.
	// An unspecified principal is treated as within limits.
	mortgage := c.computeMortgageInterest(g, r, it)

	// Investment interest, capped at net investment income.
	invInterest := g.Document("scheduleA.line9.paid", "Investment interest paid", doc, "investment_interest", it.InvestmentInterest, 0)
	invDeduction := g.Computed("scheduleA.line9", "Investment interest deduction",
		"min(interest paid, max(0, net investment income))",
		min(invInterest.Amount, taxmath.Floor0(nii.Amount)), invInterest, nii)

	// Charitable: per-category AGI caps, then the aggregate cap.
	cash := g.Document("scheduleA.line11", "Gifts by cash or check", doc, "cash_contributions", it.CashContributions, 0)
	noncash := g.Document("scheduleA.line12", "Gifts other than cash", doc, "noncash_contributions", it.NoncashContributions, 0)
	cashCap := taxmath.MulRound(agi.Amount, c.CharitableCashAGICap)
	noncashCap := taxmath.MulRound(agi.Amount, c.CharitableNoncashAGICap)
	totalCap := taxmath.MulRound(agi.Amount, c.CharitableTotalAGICap)
	charitable := g.Computed("scheduleA.line14", "Charitable contribution deduction",
		fmt.Sprintf("min(min(cash, %.0f%% AGI) + min(noncash, %.0f%% AGI), %.0f%% AGI)",
			c.CharitableCashAGICap*100, c.CharitableNoncashAGICap*100, c.CharitableTotalAGICap*100),
		min(min(cash.Amount, cashCap)+min(noncash.Amount, noncashCap), totalCap),
		cash, noncash, agi)

	total := g.Computed("scheduleA.line17", "Total itemized deductions",
		"medical + SALT + mortgage interest + investment interest + charitable",
		medical.Amount+salt.Amount+mortgage.Amount+invDeduction.Amount+charitable.Amount,
		medical, salt, mortgage, invDeduction, charitable)

	return &domain.ScheduleAResult{
		Medical:            medical,
		SALTRaw:            raw,
		SALT:               salt,
		MortgageInterest:   mortgage,
		InvestmentInterest: invDeduction,
		Charitable:         charitable,
		Total:              total,
	}
}

func (c Constants) computeMortgageInterest(g *domain.TraceGraph, r *domain.TaxReturn, it *domain.ItemizedDetail) domain.TracedValue {
	const doc = "itemized"
	interest := g.Document("scheduleA.line8a", "Home mortgage interest paid", doc, "mortgage_interest", it.MortgageInterest, 0)
	limit := c.MortgageLimitPostTCJA.For(r.Status)
	if it.MortgagePreTCJA {
		limit = c.MortgageLimitPreTCJA.For(r.Status)
	}
	if it.MortgagePrincipal <= limit {
		// Unspecified (zero) principal counts as within limits.
		return g.Computed("scheduleA.line8e", "Deductible home mortgage interest",
			"interest paid (loan within limit)", interest.Amount, interest)
	}
	principal := g.Document("scheduleA.line8.principal", "Outstanding mortgage principal", doc, "mortgage_principal", it.MortgagePrincipal, 0)
	prorated := taxmath.Round(float64(interest.Amount) * float64(limit) / float64(principal.Amount))
	return g.Computed("scheduleA.line8e", "Deductible home mortgage interest",
		fmt.Sprintf("round(interest x %d / principal)", limit),
		prorated, interest, principal)
}
