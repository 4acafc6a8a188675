package validation

import (
	"context"
	"fmt"

	"taxcore/pkg/domain"
)

// NewScopeDisclosureRule returns the always-on rule stating what the engine
// covers. It emits exactly one info finding per computation.
func NewScopeDisclosureRule() Rule {
	return scopeDisclosureRule{}
}

type scopeDisclosureRule struct{}

func (scopeDisclosureRule) Name() string { return "scope_disclosure" }

func (scopeDisclosureRule) Evaluate(_ context.Context, _ *domain.TaxReturn, _ *domain.ReturnResult) (domain.ReviewResult, error) {
	return domain.ReviewResult{Findings: []domain.Finding{{
		Code:     "scope.disclosure",
		Severity: domain.SeverityInfo,
		Message:  "covers Form 1040 with Schedules A/B/C/SE, EITC, CTC, dependent care, FTC, NIIT, and Additional Medicare Tax; other forms are out of scope",
	}}}, nil
}

// NewUnsupportedFeatureRule returns the rule that flags return inputs the
// engine treats as zero. Each gap degrades to a conservative default and is
// named here rather than silently dropped.
func NewUnsupportedFeatureRule() Rule {
	return unsupportedFeatureRule{}
}

type unsupportedFeatureRule struct{}

func (unsupportedFeatureRule) Name() string { return "unsupported_feature" }

func (unsupportedFeatureRule) Evaluate(_ context.Context, r *domain.TaxReturn, _ *domain.ReturnResult) (domain.ReviewResult, error) {
	var res domain.ReviewResult
	for _, k1 := range r.K1s {
		res.Findings = append(res.Findings, domain.Finding{
			Code:     "scope.k1_passthrough",
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("K-1 from %s (%s) is not modeled; its income is treated as $0", k1.Entity, k1.ID),
		})
	}
	for _, rental := range r.Rentals {
		res.Findings = append(res.Findings, domain.Finding{
			Code:     "scope.rental_detail",
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("rental activity %s (%s) is not modeled; its income is treated as $0", rental.Property, rental.ID),
		})
	}
	if r.NonresidentAlien != nil {
		res.Findings = append(res.Findings, domain.Finding{
			Code:     "scope.nonresident_alien",
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("nonresident alien returns (treaty country %s) are outside supported scope; figures assume resident treatment", r.NonresidentAlien.TreatyCountry),
		})
	}
	return res, nil
}
