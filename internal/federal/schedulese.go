package federal

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// ComputeScheduleSE computes self-employment tax. w2SSWages is the total W-2
// Social Security wage figure; those wages fill the annual wage base first, so
// the Social Security component only taxes whatever room remains. The Medicare
// component is uncapped. Returns nil when net self-employment earnings are not
// positive.
func (c Constants) ComputeScheduleSE(g *domain.TraceGraph, netProfit, w2SSWages domain.TracedValue) *domain.ScheduleSEResult {
	netEarnings := taxmath.MulRound(netProfit.Amount, c.SENetEarningsFactor)
	if netEarnings <= 0 {
		return nil
	}
	earnings := g.Computed("scheduleSE.line4a", "Net earnings from self-employment",
		fmt.Sprintf("round(net profit x %.4f)", c.SENetEarningsFactor),
		netEarnings, netProfit)

	ssRoom := taxmath.Floor0(c.SocialSecurityWageBase - w2SSWages.Amount)
	ssBase := min(earnings.Amount, ssRoom)
	ssTax := g.Computed("scheduleSE.line10", "Social Security portion of SE tax",
		fmt.Sprintf("round(min(net earnings, max(0, %d - W-2 SS wages)) x %.1f%%)",
			c.SocialSecurityWageBase, c.SocialSecurityRate*100),
		taxmath.MulRound(ssBase, c.SocialSecurityRate), earnings, w2SSWages)

	medicareTax := g.Computed("scheduleSE.line11", "Medicare portion of SE tax",
		fmt.Sprintf("round(net earnings x %.1f%%)", c.MedicareRate*100),
		taxmath.MulRound(earnings.Amount, c.MedicareRate), earnings)

	total := g.Computed("scheduleSE.line12", "Self-employment tax",
		"Social Security portion + Medicare portion",
		ssTax.Amount+medicareTax.Amount, ssTax, medicareTax)

	half := g.Computed("scheduleSE.line13", "Deduction for one-half of SE tax",
		"round(SE tax x 50%)",
		taxmath.MulRound(total.Amount, 0.5), total)

	return &domain.ScheduleSEResult{
		NetEarnings:       earnings,
		SocialSecurityTax: ssTax,
		MedicareTax:       medicareTax,
		Total:             total,
		HalfDeduction:     half,
	}
}
