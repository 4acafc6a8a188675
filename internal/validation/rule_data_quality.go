package validation

import (
	"context"
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// NewW2ConsistencyRule returns the rule checking internal W-2 box arithmetic.
// Anomalies are reported but the boxes are still used as given; the engine
// never corrects input.
func NewW2ConsistencyRule() Rule {
	return w2ConsistencyRule{}
}

type w2ConsistencyRule struct{}

func (w2ConsistencyRule) Name() string { return "w2_consistency" }

// withholdingSlack absorbs rounding inside payroll systems when comparing a
// stated withholding box against rate times wages.
const withholdingSlack = domain.Cents(100)

func (w2ConsistencyRule) Evaluate(_ context.Context, r *domain.TaxReturn, _ *domain.ReturnResult) (domain.ReviewResult, error) {
	var res domain.ReviewResult
	for _, w := range r.W2s {
		if w.SocialSecurityWages != 0 && w.SocialSecurityWages < w.Wages {
			res.Findings = append(res.Findings, domain.Finding{
				Code:     "quality.w2_ss_wages",
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("W-2 %s: social security wages (box 3) below box 1 wages; pre-tax deferrals normally raise box 3, not lower it", w.ID),
			})
		}
		if w.SocialSecurityWages != 0 && w.SocialSecurityTax != 0 {
			expected := taxmath.MulRound(w.SocialSecurityWages, 0.062)
			if diff := abs(w.SocialSecurityTax - expected); diff > withholdingSlack {
				res.Findings = append(res.Findings, domain.Finding{
					Code:     "quality.w2_ss_tax",
					Severity: domain.SeverityWarning,
					Message:  fmt.Sprintf("W-2 %s: social security tax (box 4) differs from 6.2%% of box 3 by %d cents", w.ID, diff),
				})
			}
		}
		if w.MedicareWages != 0 && w.MedicareWages < w.Wages {
			res.Findings = append(res.Findings, domain.Finding{
				Code:     "quality.w2_medicare_wages",
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("W-2 %s: medicare wages (box 5) below box 1 wages", w.ID),
			})
		}
	}
	return res, nil
}

// NewForeignTaxConsistencyRule returns the rule flagging 1099s whose foreign
// tax paid exceeds the income it was withheld against.
func NewForeignTaxConsistencyRule() Rule {
	return foreignTaxConsistencyRule{}
}

type foreignTaxConsistencyRule struct{}

func (foreignTaxConsistencyRule) Name() string { return "foreign_tax_consistency" }

func (foreignTaxConsistencyRule) Evaluate(_ context.Context, r *domain.TaxReturn, _ *domain.ReturnResult) (domain.ReviewResult, error) {
	var res domain.ReviewResult
	for _, d := range r.Dividends {
		if d.ForeignTaxPaid > 0 && d.ForeignTaxPaid > d.OrdinaryDividends {
			res.Findings = append(res.Findings, domain.Finding{
				Code:     "quality.foreign_tax_exceeds_dividend",
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("1099-DIV %s (%s): foreign tax paid exceeds total ordinary dividends", d.ID, d.Payer),
			})
		}
	}
	for _, i := range r.Interest {
		if i.ForeignTaxPaid > 0 && i.ForeignTaxPaid > i.Interest {
			res.Findings = append(res.Findings, domain.Finding{
				Code:     "quality.foreign_tax_exceeds_interest",
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("1099-INT %s (%s): foreign tax paid exceeds interest income", i.ID, i.Payer),
			})
		}
	}
	return res, nil
}

func abs(v domain.Cents) domain.Cents {
	if v < 0 {
		return -v
	}
	return v
}
