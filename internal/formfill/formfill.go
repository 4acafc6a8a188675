// Package formfill projects a computed result onto named PDF form fields.
// It owns no tax logic: each projection is a static field map applied to the
// result, with amounts rendered as whole-dollar strings the way the IRS
// AcroForm fields expect. The PDF filler itself lives outside the engine.
package formfill

import (
	"fmt"

	"taxcore/pkg/domain"
)

// Field is one filled form field, in form display order.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Form1040 projects the federal result onto Form 1040 field names.
func Form1040(res *domain.Form1040Result) []Field {
	fields := []Field{
		{Name: "f1040_line1a", Value: dollars(res.Wages.Amount)},
		{Name: "f1040_line2b", Value: dollars(res.TaxableInterest.Amount)},
		{Name: "f1040_line3a", Value: dollars(res.QualifiedDividends.Amount)},
		{Name: "f1040_line3b", Value: dollars(res.OrdinaryDividends.Amount)},
		{Name: "f1040_line7", Value: dollars(res.CapitalGain.Amount)},
		{Name: "f1040_line8", Value: dollars(res.OtherIncome.Amount)},
		{Name: "f1040_line9", Value: dollars(res.TotalIncome.Amount)},
		{Name: "f1040_line10", Value: dollars(res.Adjustments.Amount)},
		{Name: "f1040_line11", Value: dollars(res.AGI.Amount)},
		{Name: "f1040_line12", Value: dollars(res.Deduction.Amount)},
		{Name: "f1040_line15", Value: dollars(res.TaxableIncome.Amount)},
		{Name: "f1040_line16", Value: dollars(res.Tax.Amount)},
		{Name: "f1040_line22", Value: dollars(res.TaxAfterCredits.Amount)},
		{Name: "f1040_line23", Value: dollars(res.SelfEmploymentTax.Amount + res.AdditionalMedicare.Amount + res.NIIT.Amount)},
		{Name: "f1040_line24", Value: dollars(res.TotalTax.Amount)},
		{Name: "f1040_line25", Value: dollars(res.Withholding.Amount)},
		{Name: "f1040_line26", Value: dollars(res.EstimatedPayments.Amount)},
		{Name: "f1040_line27", Value: dollars(res.EarnedIncomeCredit.Amount)},
		{Name: "f1040_line33", Value: dollars(res.TotalPayments.Amount)},
		{Name: "f1040_line34", Value: dollars(res.Overpaid.Amount)},
		{Name: "f1040_line37", Value: dollars(res.AmountOwed.Amount)},
	}
	return fields
}

// ScheduleA projects the itemized-deduction result onto Schedule A fields.
// A nil result returns nil: the schedule was not part of the return.
func ScheduleA(res *domain.ScheduleAResult) []Field {
	if res == nil {
		return nil
	}
	return []Field{
		{Name: "schedA_line4", Value: dollars(res.Medical.Amount)},
		{Name: "schedA_line5e", Value: dollars(res.SALT.Amount)},
		{Name: "schedA_line8e", Value: dollars(res.MortgageInterest.Amount)},
		{Name: "schedA_line9", Value: dollars(res.InvestmentInterest.Amount)},
		{Name: "schedA_line14", Value: dollars(res.Charitable.Amount)},
		{Name: "schedA_line17", Value: dollars(res.Total.Amount)},
	}
}

// Return projects a full computed result: the federal form, Schedule A when
// it was part of the return, and every state result in computed order.
func Return(res *domain.ReturnResult) []Field {
	fields := Form1040(&res.Federal)
	fields = append(fields, ScheduleA(res.Federal.ScheduleA)...)
	for i := range res.States {
		fields = append(fields, State(&res.States[i])...)
	}
	return fields
}

// State projects a normalized state result onto generic state form fields.
func State(res *domain.StateComputeResult) []Field {
	prefix := "state_" + res.State
	return []Field{
		{Name: prefix + "_agi", Value: dollars(res.AGI.Amount)},
		{Name: prefix + "_taxable", Value: dollars(res.TaxableIncome.Amount)},
		{Name: prefix + "_tax", Value: dollars(res.Tax.Amount)},
		{Name: prefix + "_withholding", Value: dollars(res.Withholding.Amount)},
		{Name: prefix + "_overpaid", Value: dollars(res.Overpaid.Amount)},
		{Name: prefix + "_owed", Value: dollars(res.AmountOwed.Amount)},
	}
}

// dollars renders cents as a whole-dollar string, rounding half away from
// zero the way the paper forms instruct.
func dollars(c domain.Cents) string {
	neg := c < 0
	if neg {
		c = -c
	}
	d := (c + 50) / 100
	if neg && d != 0 {
		return fmt.Sprintf("-%d", d)
	}
	return fmt.Sprintf("%d", d)
}
