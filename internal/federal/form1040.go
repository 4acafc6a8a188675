package federal

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// Statutory capital loss limits, stable across the supported years.
const (
	capitalLossLimit    = domain.Cents(300000)
	capitalLossLimitMFS = domain.Cents(150000)
)

// ComputeForm1040 composes the schedules and credits into the canonical
// federal result. The node graph is a fixed DAG evaluated in one pass:
// income lines, total income, adjustments, AGI, deduction, taxable income,
// tax, credits in fixed order, other taxes, payments, refund or amount owed.
// Every computed node's input list is exactly the set of upstream values its
// arithmetic used.
func (c Constants) ComputeForm1040(g *domain.TraceGraph, r *domain.TaxReturn) domain.Form1040Result {
	// Raw wage-statement nodes and their aggregates.
	var wageInputs, fedWHInputs, ssWageInputs, medicareWageInputs []domain.TracedValue
	var wageTotal, ssWageTotal, medicareWageTotal domain.Cents
	for _, w := range r.W2s {
		wv := g.Document(fmt.Sprintf("w2.%s.wages", w.ID), fmt.Sprintf("Wages (%s)", w.Employer),
			w.ID, "wages", w.Wages, w.Confidence)
		wh := g.Document(fmt.Sprintf("w2.%s.federal_withholding", w.ID), fmt.Sprintf("Federal withholding (%s)", w.Employer),
			w.ID, "federal_withholding", w.FederalWithholding, w.Confidence)
		ss := g.Document(fmt.Sprintf("w2.%s.social_security_wages", w.ID), fmt.Sprintf("Social Security wages (%s)", w.Employer),
			w.ID, "social_security_wages", w.SocialSecurityWages, w.Confidence)
		mw := g.Document(fmt.Sprintf("w2.%s.medicare_wages", w.ID), fmt.Sprintf("Medicare wages (%s)", w.Employer),
			w.ID, "medicare_wages", w.MedicareWages, w.Confidence)
		wageInputs = append(wageInputs, wv)
		fedWHInputs = append(fedWHInputs, wh)
		ssWageInputs = append(ssWageInputs, ss)
		medicareWageInputs = append(medicareWageInputs, mw)
		wageTotal += wv.Amount
		ssWageTotal += ss.Amount
		medicareWageTotal += mw.Amount
	}
	wages := g.Computed("form1040.line1a", "Wages, salaries, tips", "sum of W-2 wages", wageTotal, wageInputs...)
	ssWages := g.Computed("w2.total_social_security_wages", "Total W-2 Social Security wages",
		"sum of W-2 Social Security wages", ssWageTotal, ssWageInputs...)
	medicareWages := g.Computed("w2.total_medicare_wages", "Total W-2 Medicare wages",
		"sum of W-2 Medicare wages", medicareWageTotal, medicareWageInputs...)

	// Interest and dividends through Schedule B.
	schedB := c.ComputeScheduleB(g, r)
	var exemptInputs []domain.TracedValue
	var exemptTotal domain.Cents
	for _, d := range r.Interest {
		if d.TaxExemptInterest == 0 {
			continue
		}
		v := g.Document(fmt.Sprintf("int.%s.tax_exempt", d.ID), fmt.Sprintf("Tax-exempt interest (%s)", d.Payer),
			d.ID, "tax_exempt_interest", d.TaxExemptInterest, d.Confidence)
		exemptInputs = append(exemptInputs, v)
		exemptTotal += v.Amount
	}
	exemptInterest := g.Computed("form1040.line2a", "Tax-exempt interest",
		"sum of 1099-INT tax-exempt interest", exemptTotal, exemptInputs...)
	interest := g.Computed("form1040.line2b", "Taxable interest", "Schedule B line 4",
		schedB.Interest.Amount, schedB.Interest)

	var qdInputs []domain.TracedValue
	var qdTotal domain.Cents
	for _, d := range r.Dividends {
		v := g.Document(fmt.Sprintf("div.%s.qualified", d.ID), fmt.Sprintf("Qualified dividends (%s)", d.Payer),
			d.ID, "qualified_dividends", d.QualifiedDividends, d.Confidence)
		qdInputs = append(qdInputs, v)
		qdTotal += v.Amount
	}
	qualifiedDividends := g.Computed("form1040.line3a", "Qualified dividends",
		"sum of 1099-DIV qualified dividends", qdTotal, qdInputs...)
	ordinaryDividends := g.Computed("form1040.line3b", "Ordinary dividends", "Schedule B line 6",
		schedB.OrdinaryDividends.Amount, schedB.OrdinaryDividends)

	// Capital gain or loss.
	capitalGain, longTermNet := c.computeCapitalGain(g, r)

	// Business income and self-employment tax.
	schedC := c.ComputeScheduleC(g, r)
	var otherIncome domain.TracedValue
	if schedC != nil {
		otherIncome = g.Computed("form1040.line8", "Other income from Schedule 1",
			"business net profit (pass-through and rental activity not modeled, treated as 0)",
			schedC.NetProfit.Amount, schedC.NetProfit)
	} else {
		otherIncome = g.Computed("form1040.line8", "Other income from Schedule 1",
			"0 (no business income; pass-through and rental activity not modeled)", 0)
	}

	var schedSE *domain.ScheduleSEResult
	if schedC != nil {
		schedSE = c.ComputeScheduleSE(g, schedC.NetProfit, ssWages)
	}
	seNetEarnings := func() domain.TracedValue {
		if schedSE != nil {
			return schedSE.NetEarnings
		}
		return g.Computed("scheduleSE.line4a", "Net earnings from self-employment",
			"0 (no self-employment income)", 0)
	}()

	totalIncome := g.Computed("form1040.line9", "Total income",
		"wages + taxable interest + ordinary dividends + capital gain + other income",
		wages.Amount+interest.Amount+ordinaryDividends.Amount+capitalGain.Amount+otherIncome.Amount,
		wages, interest, ordinaryDividends, capitalGain, otherIncome)

	var adjustments domain.TracedValue
	if schedSE != nil {
		adjustments = g.Computed("form1040.line10", "Adjustments to income",
			"deduction for one-half of self-employment tax",
			schedSE.HalfDeduction.Amount, schedSE.HalfDeduction)
	} else {
		adjustments = g.Computed("form1040.line10", "Adjustments to income", "0 (no adjustments)", 0)
	}

	agi := g.Computed("form1040.line11", "Adjusted gross income",
		"total income - adjustments",
		totalIncome.Amount-adjustments.Amount, totalIncome, adjustments)
	magi := g.Computed("form1040.magi", "Modified adjusted gross income",
		"AGI (no excluded foreign income modeled)", agi.Amount, agi)
	nii := g.Computed("form1040.net_investment_income", "Net investment income",
		"taxable interest + ordinary dividends + max(0, capital gain)",
		interest.Amount+ordinaryDividends.Amount+taxmath.Floor0(capitalGain.Amount),
		interest, ordinaryDividends, capitalGain)

	// Deduction: larger of standard or itemized.
	schedA := c.ComputeScheduleA(g, r, agi, magi, nii)
	standard := g.Computed("form1040.standard_deduction", "Standard deduction",
		fmt.Sprintf("standard deduction (%s, %d)", r.Status, c.Year),
		c.StandardDeduction.For(r.Status))
	var deduction domain.TracedValue
	if schedA != nil && schedA.Total.Amount > standard.Amount {
		deduction = g.Computed("form1040.line12", "Deduction",
			"itemized deductions (larger than standard deduction)",
			schedA.Total.Amount, schedA.Total, standard)
	} else if schedA != nil {
		deduction = g.Computed("form1040.line12", "Deduction",
			"standard deduction (not below itemized deductions)",
			standard.Amount, standard, schedA.Total)
	} else {
		deduction = g.Computed("form1040.line12", "Deduction", "standard deduction",
			standard.Amount, standard)
	}

	taxable := g.Computed("form1040.line15", "Taxable income",
		"max(0, AGI - deduction)",
		taxmath.Floor0(agi.Amount-deduction.Amount), agi, deduction)

	// Tax: the preferential-rate worksheet applies whenever qualified
	// dividends or net long-term gain is present.
	preferential := g.Computed("form1040.preferential_income", "Preferential-rate income",
		"qualified dividends + max(0, net long-term gain incl. distributions)",
		qualifiedDividends.Amount+taxmath.Floor0(longTermNet.Amount), qualifiedDividends, longTermNet)
	ordinaryTable := c.OrdinaryBrackets.For(r.Status)
	var tax domain.TracedValue
	if preferential.Amount > 0 {
		tax = g.Computed("form1040.line16", "Tax",
			"qualified dividends and capital gain worksheet",
			taxmath.QDCGTax(taxable.Amount, preferential.Amount, ordinaryTable, c.PreferentialBrackets.For(r.Status)),
			taxable, preferential)
	} else {
		tax = g.Computed("form1040.line16", "Tax",
			"progressive brackets on taxable income",
			taxmath.BracketTax(taxable.Amount, ordinaryTable), taxable)
	}

	// Nonrefundable credits, applied in fixed order: FTC, dependent care,
	// child tax credit, each limited to the tax remaining.
	ftc := c.ComputeFTC(g, r, taxable, tax)
	earnedIncome := c.computeEarnedIncome(g, wages, schedC, schedSE)
	dcc := c.ComputeDependentCareCredit(g, r, agi, earnedIncome)
	ctc := c.ComputeChildTaxCredit(g, r, magi)

	remaining := tax.Amount
	appliedFTC := g.Computed("form1040.credit_ftc", "Foreign tax credit applied",
		"min(foreign tax credit, tax remaining)", min(ftc.Credit.Amount, remaining), ftc.Credit, tax)
	remaining -= appliedFTC.Amount
	appliedDCC := g.Computed("form1040.credit_dependent_care", "Dependent care credit applied",
		"min(dependent care credit, tax remaining)", min(dcc.Amount, remaining), dcc, appliedFTC, tax)
	remaining -= appliedDCC.Amount
	appliedCTC := g.Computed("form1040.line19", "Child tax credit applied",
		"min(child tax credit, tax remaining)", min(ctc.Amount, remaining), ctc, appliedDCC, appliedFTC, tax)

	totalCredits := g.Computed("form1040.line21", "Total nonrefundable credits",
		"FTC + dependent care credit + child tax credit, as applied",
		appliedFTC.Amount+appliedDCC.Amount+appliedCTC.Amount, appliedFTC, appliedDCC, appliedCTC)
	taxAfterCredits := g.Computed("form1040.line22", "Tax after credits",
		"max(0, tax - total credits)",
		taxmath.Floor0(tax.Amount-totalCredits.Amount), tax, totalCredits)

	// Other taxes, independently computed and summed.
	addlMedicare := c.ComputeAdditionalMedicareTax(g, r, medicareWages, seNetEarnings)
	niit := c.ComputeNIIT(g, r, nii, magi)
	var otherTaxes domain.TracedValue
	if schedSE != nil {
		otherTaxes = g.Computed("form1040.line23", "Other taxes",
			"self-employment tax + Additional Medicare Tax + NIIT",
			schedSE.Total.Amount+addlMedicare.Amount+niit.Amount, schedSE.Total, addlMedicare, niit)
	} else {
		otherTaxes = g.Computed("form1040.line23", "Other taxes",
			"Additional Medicare Tax + NIIT",
			addlMedicare.Amount+niit.Amount, addlMedicare, niit)
	}
	totalTax := g.Computed("form1040.line24", "Total tax",
		"tax after credits + other taxes",
		taxAfterCredits.Amount+otherTaxes.Amount, taxAfterCredits, otherTaxes)

	// Payments and refundable credits.
	withholdingInputs := append([]domain.TracedValue{}, fedWHInputs...)
	var withholdingTotal domain.Cents
	for _, v := range fedWHInputs {
		withholdingTotal += v.Amount
	}
	for _, d := range r.Interest {
		if d.FederalWithholding == 0 {
			continue
		}
		v := g.Document(fmt.Sprintf("int.%s.federal_withholding", d.ID), fmt.Sprintf("Federal withholding (%s)", d.Payer),
			d.ID, "federal_withholding", d.FederalWithholding, d.Confidence)
		withholdingInputs = append(withholdingInputs, v)
		withholdingTotal += v.Amount
	}
	for _, d := range r.Dividends {
		if d.FederalWithholding == 0 {
			continue
		}
		v := g.Document(fmt.Sprintf("div.%s.federal_withholding", d.ID), fmt.Sprintf("Federal withholding (%s)", d.Payer),
			d.ID, "federal_withholding", d.FederalWithholding, d.Confidence)
		withholdingInputs = append(withholdingInputs, v)
		withholdingTotal += v.Amount
	}
	withholding := g.Computed("form1040.line25", "Federal income tax withheld",
		"sum of W-2 and 1099 withholding", withholdingTotal, withholdingInputs...)
	estimated := g.Document("form1040.line26", "Estimated tax payments",
		"return", "estimated_payments", r.EstimatedPayments, 0)

	investmentIncome := g.Computed("eitc.investment_income", "Investment income for EITC",
		"taxable interest + tax-exempt interest + ordinary dividends + max(0, capital gain)",
		interest.Amount+exemptInterest.Amount+ordinaryDividends.Amount+taxmath.Floor0(capitalGain.Amount),
		interest, exemptInterest, ordinaryDividends, capitalGain)
	eitc := c.ComputeEITC(g, r, earnedIncome, agi, investmentIncome)
	eitcLine := g.Computed("form1040.line27", "Earned income credit",
		"EITC claimed", eitc.Credit.Amount, eitc.Credit)

	totalPayments := g.Computed("form1040.line33", "Total payments",
		"withholding + estimated payments + earned income credit",
		withholding.Amount+estimated.Amount+eitcLine.Amount, withholding, estimated, eitcLine)

	overpaid := g.Computed("form1040.line34", "Overpayment",
		"max(0, total payments - total tax)",
		taxmath.Floor0(totalPayments.Amount-totalTax.Amount), totalPayments, totalTax)
	owed := g.Computed("form1040.line37", "Amount owed",
		"max(0, total tax - total payments)",
		taxmath.Floor0(totalTax.Amount-totalPayments.Amount), totalTax, totalPayments)

	return domain.Form1040Result{
		Wages:               wages,
		TaxableInterest:     interest,
		QualifiedDividends:  qualifiedDividends,
		OrdinaryDividends:   ordinaryDividends,
		CapitalGain:         capitalGain,
		OtherIncome:         otherIncome,
		TotalIncome:         totalIncome,
		Adjustments:         adjustments,
		AGI:                 agi,
		Deduction:           deduction,
		TaxableIncome:       taxable,
		Tax:                 tax,
		ChildTaxCredit:      appliedCTC,
		DependentCareCredit: appliedDCC,
		ForeignTaxCredit:    appliedFTC,
		TotalCredits:        totalCredits,
		TaxAfterCredits:     taxAfterCredits,
		SelfEmploymentTax:   seTotalOrZero(g, schedSE),
		AdditionalMedicare:  addlMedicare,
		NIIT:                niit,
		TotalTax:            totalTax,
		Withholding:         withholding,
		EstimatedPayments:   estimated,
		EarnedIncomeCredit:  eitcLine,
		TotalPayments:       totalPayments,
		Overpaid:            overpaid,
		AmountOwed:          owed,
		ScheduleA:           schedA,
		ScheduleB:           schedB,
		ScheduleC:           schedC,
		ScheduleSE:          schedSE,
		EITC:                eitc,
		FTC:                 ftc,
	}
}

// computeCapitalGain nets short- and long-term dispositions with capital gain
// distributions and any prior-year loss carryforward, floored at the statutory
// loss limit. It returns the line 7 figure plus the net long-term component
// feeding the preferential-income node.
func (c Constants) computeCapitalGain(g *domain.TraceGraph, r *domain.TaxReturn) (capitalGain, longTermNet domain.TracedValue) {
	var stInputs, ltInputs []domain.TracedValue
	var stTotal, ltTotal domain.Cents
	for _, s := range r.Sales {
		prefix := fmt.Sprintf("cap.%s", s.ID)
		proceeds := g.Document(prefix+".proceeds", fmt.Sprintf("Proceeds (%s)", s.Description),
			s.ID, "proceeds", s.Proceeds, s.Confidence)
		basis := g.Document(prefix+".basis", fmt.Sprintf("Basis (%s)", s.Description),
			s.ID, "basis", s.Basis, s.Confidence)
		gain := g.Computed(prefix+".gain", fmt.Sprintf("Gain or loss (%s)", s.Description),
			"proceeds - basis", proceeds.Amount-basis.Amount, proceeds, basis)
		if s.LongTerm {
			ltInputs = append(ltInputs, gain)
			ltTotal += gain.Amount
		} else {
			stInputs = append(stInputs, gain)
			stTotal += gain.Amount
		}
	}
	shortTerm := g.Computed("cap.short_term", "Net short-term gain or loss",
		"sum of short-term gains and losses", stTotal, stInputs...)

	var distInputs []domain.TracedValue
	var distTotal domain.Cents
	for _, d := range r.Dividends {
		if d.CapitalGainDistributions == 0 {
			continue
		}
		v := g.Document(fmt.Sprintf("div.%s.capgain_dist", d.ID), fmt.Sprintf("Capital gain distributions (%s)", d.Payer),
			d.ID, "capital_gain_distributions", d.CapitalGainDistributions, d.Confidence)
		distInputs = append(distInputs, v)
		distTotal += v.Amount
	}
	ltInputs = append(ltInputs, distInputs...)
	longTermNet = g.Computed("cap.long_term", "Net long-term gain or loss",
		"sum of long-term gains, losses, and capital gain distributions",
		ltTotal+distTotal, ltInputs...)

	net := shortTerm.Amount + longTermNet.Amount
	inputs := []domain.TracedValue{shortTerm, longTermNet}
	formula := "short-term + long-term"
	if r.PriorYear != nil && r.PriorYear.CapitalLoss != 0 {
		carry := g.Document("carryforward.capital_loss", "Prior-year capital loss carryforward",
			"carryforward", "capital_loss", r.PriorYear.CapitalLoss, 0)
		net -= carry.Amount
		inputs = append(inputs, carry)
		formula = "short-term + long-term - carryforward"
	}
	limit := capitalLossLimit
	if r.Status == domain.StatusMarriedSeparate {
		limit = capitalLossLimitMFS
	}
	if net < -limit {
		net = -limit
		formula += fmt.Sprintf(", loss limited to %d", limit)
	}
	capitalGain = g.Computed("form1040.line7", "Capital gain or loss", formula, net, inputs...)
	return capitalGain, longTermNet
}

// computeEarnedIncome derives the earned-income base used by the EITC and the
// dependent care credit: wages plus self-employment profit net of the half-SE
// deduction.
func (c Constants) computeEarnedIncome(g *domain.TraceGraph, wages domain.TracedValue, schedC *domain.ScheduleCResult, schedSE *domain.ScheduleSEResult) domain.TracedValue {
	if schedC == nil {
		return g.Computed("eitc.earned_income", "Earned income", "W-2 wages", wages.Amount, wages)
	}
	seEarned := taxmath.Floor0(schedC.NetProfit.Amount)
	inputs := []domain.TracedValue{wages, schedC.NetProfit}
	formula := "wages + max(0, business net profit)"
	if schedSE != nil {
		seEarned = taxmath.Floor0(schedC.NetProfit.Amount - schedSE.HalfDeduction.Amount)
		inputs = append(inputs, schedSE.HalfDeduction)
		formula = "wages + max(0, business net profit - half SE deduction)"
	}
	return g.Computed("eitc.earned_income", "Earned income", formula, wages.Amount+seEarned, inputs...)
}

func seTotalOrZero(g *domain.TraceGraph, se *domain.ScheduleSEResult) domain.TracedValue {
	if se != nil {
		return se.Total
	}
	return g.Computed("form1040.se_tax_none", "Self-employment tax", "0 (no self-employment income)", 0)
}
