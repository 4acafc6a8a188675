package federal

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// eitcRelationships enumerates the relationships that satisfy the
// qualifying-child relationship test.
var eitcRelationships = map[domain.Relationship]bool{
	domain.RelationshipChild:       true,
	domain.RelationshipStepchild:   true,
	domain.RelationshipFosterChild: true,
	domain.RelationshipSibling:     true,
	domain.RelationshipGrandchild:  true,
	domain.RelationshipNieceNephew: true,
}

// qualifyingChildrenEITC counts dependents passing the identification, age,
// relationship, and residency tests.
func (c Constants) qualifyingChildrenEITC(r *domain.TaxReturn) int {
	count := 0
	for _, d := range r.Dependents {
		if d.TIN == "" {
			continue
		}
		ageLimit := c.EITCChildAgeLimit
		if d.FullTimeStudent {
			ageLimit = c.EITCStudentAgeLimit
		}
		if d.Age >= ageLimit {
			continue
		}
		if !eitcRelationships[d.Relationship] {
			continue
		}
		if d.MonthsInHome <= c.EITCResidencyMonthsMin {
			continue
		}
		count++
	}
	return count
}

// eitcAt evaluates one piecewise schedule at a single income base.
func eitcAt(income domain.Cents, s EITCSchedule, joint bool) domain.Cents {
	phaseOutStart := s.PhaseOutStartSingle
	if joint {
		phaseOutStart = s.PhaseOutStartMFJ
	}
	switch {
	case income < s.PlateauStart:
		return taxmath.MulRound(income, s.PhaseInRate)
	case income <= phaseOutStart:
		return s.MaxCredit
	default:
		reduction := taxmath.MulRound(income-phaseOutStart, s.PhaseOutRate)
		return taxmath.Floor0(s.MaxCredit - reduction)
	}
}

// ComputeEITC computes the earned income credit. The statute evaluates the
// phase-out against the larger base, so the schedule runs at both earned
// income and AGI and the claimed credit is the minimum of the two; both
// evaluations get their own trace nodes. Eligibility gates run in fixed order
// and an ineligible return still yields a zero-credit result naming the gate.
func (c Constants) ComputeEITC(g *domain.TraceGraph, r *domain.TaxReturn, earnedIncome, agi, investmentIncome domain.TracedValue) *domain.EITCResult {
	children := c.qualifyingChildrenEITC(r)

	ineligible := func(reason string, inputs ...domain.TracedValue) *domain.EITCResult {
		credit := g.Computed("eitc.credit", "Earned income credit",
			"0 (ineligible: "+reason+")", 0, inputs...)
		return &domain.EITCResult{
			Eligible:           false,
			IneligibleReason:   reason,
			QualifyingChildren: children,
			Credit:             credit,
		}
	}

	if r.Status == domain.StatusMarriedSeparate {
		return ineligible("married filing separately")
	}
	if investmentIncome.Amount > c.EITCInvestmentIncomeLimit {
		return ineligible("investment income above limit", investmentIncome)
	}
	if children == 0 {
		if age := r.Taxpayer.Age; age != nil && (*age < c.EITCMinAge || *age > c.EITCMaxAge) {
			return ineligible(fmt.Sprintf("no qualifying children and age outside [%d,%d]", c.EITCMinAge, c.EITCMaxAge))
		}
	}
	if earnedIncome.Amount <= 0 {
		return ineligible("no earned income", earnedIncome)
	}

	schedule := c.eitcSchedule(children)
	joint := r.Status.Joint()

	atEarned := g.Computed("eitc.at_earned_income", "EITC evaluated at earned income",
		fmt.Sprintf("piecewise schedule, %d qualifying children", children),
		eitcAt(earnedIncome.Amount, schedule, joint), earnedIncome)
	atAGI := g.Computed("eitc.at_agi", "EITC evaluated at AGI",
		fmt.Sprintf("piecewise schedule, %d qualifying children", children),
		eitcAt(agi.Amount, schedule, joint), agi)
	credit := g.Computed("eitc.credit", "Earned income credit",
		"min(credit at earned income, credit at AGI)",
		min(atEarned.Amount, atAGI.Amount), atEarned, atAGI)

	return &domain.EITCResult{
		Eligible:           true,
		QualifyingChildren: children,
		AtEarnedIncome:     atEarned,
		AtAGI:              atAGI,
		Credit:             credit,
	}
}
