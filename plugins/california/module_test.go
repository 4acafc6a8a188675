package california

import (
	"testing"
	"time"

	"taxcore/internal/federal/ty2025"
	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
	"taxcore/pkg/stateapi"
)

func computeState(t *testing.T, r *domain.TaxReturn, res domain.StateResidency) domain.StateComputeResult {
	t.Helper()
	g := domain.NewTraceGraph()
	fed := ty2025.Constants().ComputeForm1040(g, r)
	m, err := NewForYear(2025)
	if err != nil {
		t.Fatalf("NewForYear: %v", err)
	}
	out, err := m.Compute(r, &fed, stateapi.Config{Year: 2025, Graph: g, Residency: res})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return out
}

func caWageReturn(wages, stateWH domain.Cents) *domain.TaxReturn {
	return &domain.TaxReturn{
		Year:   2025,
		Status: domain.StatusSingle,
		W2s: []domain.W2{{
			ID: "w2-1", Employer: "Acme", Wages: wages,
			SocialSecurityWages: wages, MedicareWages: wages,
			StateCode: "CA", StateWages: wages, StateWithholding: stateWH,
		}},
	}
}

func TestComputeFullYearResident(t *testing.T) {
	r := caWageReturn(80_000_00, 3_000_00)
	out := computeState(t, r, domain.StateResidency{State: "CA", Status: domain.ResidencyFullYear})

	if out.State != "CA" || out.ApportionmentRatio != 1 {
		t.Fatalf("state/ratio = %s/%v", out.State, out.ApportionmentRatio)
	}
	if out.AGI.Amount != 80_000_00 {
		t.Fatalf("CA AGI = %d, want 8000000", out.AGI.Amount)
	}
	if out.TaxableIncome.Amount != 74_294_00 {
		t.Fatalf("taxable = %d, want 7429400", out.TaxableIncome.Amount)
	}
	// Bracket tax 3,347.98 less the 153 exemption credit.
	if out.Credits.Amount != 153_00 {
		t.Fatalf("credits = %d, want 15300", out.Credits.Amount)
	}
	if out.Tax.Amount != 3_194_98 {
		t.Fatalf("tax = %d, want 319498", out.Tax.Amount)
	}
	if out.Withholding.Amount != 3_000_00 {
		t.Fatalf("withholding = %d, want 300000", out.Withholding.Amount)
	}
	if out.AmountOwed.Amount != 194_98 {
		t.Fatalf("amount owed = %d, want 19498", out.AmountOwed.Amount)
	}
	if out.Overpaid.Amount != 0 {
		t.Fatalf("overpaid = %d, want 0", out.Overpaid.Amount)
	}
}

func TestComputeDependentCredits(t *testing.T) {
	r := caWageReturn(80_000_00, 0)
	r.Status = domain.StatusMarriedJoint
	r.Dependents = []domain.Dependent{
		{Name: "a", TIN: "t-a", Age: 7, Relationship: domain.RelationshipChild, MonthsInHome: 12},
	}
	out := computeState(t, r, domain.StateResidency{State: "CA", Status: domain.ResidencyFullYear})
	// Two personal exemption credits for the joint return plus one
	// dependent credit.
	want := domain.Cents(2*153_00 + 475_00)
	if out.Credits.Amount != want {
		t.Fatalf("credits = %d, want %d", out.Credits.Amount, want)
	}
}

func TestComputePartYearApportionment(t *testing.T) {
	r := caWageReturn(80_000_00, 0)
	full := computeState(t, r, domain.StateResidency{State: "CA", Status: domain.ResidencyFullYear})

	moveIn := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	part := computeState(t, r, domain.StateResidency{
		State: "CA", Status: domain.ResidencyPartYear, MoveIn: &moveIn,
	})
	wantRatio := 184.0 / 365.0
	if part.ApportionmentRatio != wantRatio {
		t.Fatalf("ratio = %v, want %v", part.ApportionmentRatio, wantRatio)
	}
	wantAGI := taxmath.MulRound(80_000_00, wantRatio)
	if part.AGI.Amount != wantAGI {
		t.Fatalf("apportioned AGI = %d, want %d", part.AGI.Amount, wantAGI)
	}
	if part.Tax.Amount <= 0 || part.Tax.Amount >= full.Tax.Amount {
		t.Fatalf("part-year tax %d not inside (0, %d)", part.Tax.Amount, full.Tax.Amount)
	}
}

func TestComputeNonresident(t *testing.T) {
	r := caWageReturn(80_000_00, 0)
	out := computeState(t, r, domain.StateResidency{State: "CA", Status: domain.ResidencyNonresident})
	if out.ApportionmentRatio != 0 {
		t.Fatalf("ratio = %v, want 0", out.ApportionmentRatio)
	}
	if out.AGI.Amount != 0 || out.Tax.Amount != 0 {
		t.Fatalf("AGI/tax = %d/%d, want 0/0", out.AGI.Amount, out.Tax.Amount)
	}
}

func TestComputeEstimatedPayments(t *testing.T) {
	r := caWageReturn(80_000_00, 3_000_00)
	out := computeState(t, r, domain.StateResidency{
		State: "CA", Status: domain.ResidencyFullYear, EstimatedPayments: 500_00,
	})
	if out.Withholding.Amount != 3_500_00 {
		t.Fatalf("payments = %d, want 350000", out.Withholding.Amount)
	}
	if out.Overpaid.Amount != 305_02 {
		t.Fatalf("overpaid = %d, want 30502", out.Overpaid.Amount)
	}
}

func TestNewForYearUnsupported(t *testing.T) {
	if _, err := NewForYear(2019); err == nil {
		t.Fatal("expected an error for an unsupported year")
	}
}

func TestReviewLayoutNodesResolve(t *testing.T) {
	r := caWageReturn(80_000_00, 3_000_00)
	g := domain.NewTraceGraph()
	fed := ty2025.Constants().ComputeForm1040(g, r)
	m, _ := NewForYear(2025)
	if _, err := m.Compute(r, &fed, stateapi.Config{
		Year: 2025, Graph: g,
		Residency: domain.StateResidency{State: "CA", Status: domain.ResidencyFullYear},
	}); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for _, sec := range m.ReviewLayout() {
		for _, id := range sec.NodeIDs {
			if _, ok := g.Value(id); !ok {
				t.Fatalf("layout node %s not registered", id)
			}
		}
	}
}
