package federal

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// ComputeAdditionalMedicareTax applies the surtax to Medicare wages plus net
// self-employment earnings above the filing-status threshold. seNetEarnings is
// the unmodified Schedule SE figure (zero-amount node when no SE income).
func (c Constants) ComputeAdditionalMedicareTax(g *domain.TraceGraph, r *domain.TaxReturn, medicareWages, seNetEarnings domain.TracedValue) domain.TracedValue {
	threshold := c.AdditionalMedicareThreshold.For(r.Status)
	base := taxmath.Floor0(medicareWages.Amount + seNetEarnings.Amount - threshold)
	return g.Computed("othertax.additional_medicare", "Additional Medicare Tax",
		fmt.Sprintf("round(max(0, Medicare wages + SE net earnings - %d) x %.1f%%)", threshold, c.AdditionalMedicareRate*100),
		taxmath.MulRound(base, c.AdditionalMedicareRate), medicareWages, seNetEarnings)
}

// ComputeNIIT applies the net investment income tax: the rate on the lesser
// of net investment income and the MAGI excess over the threshold.
func (c Constants) ComputeNIIT(g *domain.TraceGraph, r *domain.TaxReturn, nii, magi domain.TracedValue) domain.TracedValue {
	threshold := c.NIITThreshold.For(r.Status)
	base := min(taxmath.Floor0(nii.Amount), taxmath.Floor0(magi.Amount-threshold))
	return g.Computed("othertax.niit", "Net investment income tax",
		fmt.Sprintf("round(min(net investment income, max(0, MAGI - %d)) x %.1f%%)", threshold, c.NIITRate*100),
		taxmath.MulRound(base, c.NIITRate), nii, magi)
}
