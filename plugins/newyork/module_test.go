package newyork

import (
	"testing"

	"taxcore/internal/federal/ty2025"
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

func nyWageReturn(wages, stateWH domain.Cents) *domain.TaxReturn {
	return &domain.TaxReturn{
		Year:   2025,
		Status: domain.StatusSingle,
		W2s: []domain.W2{{
			ID: "w2-1", Employer: "Acme", Wages: wages,
			SocialSecurityWages: wages, MedicareWages: wages,
			StateCode: "NY", StateWages: wages, StateWithholding: stateWH,
		}},
	}
}

func TestComputeFullYearResident(t *testing.T) {
	out := computeState(t, nyWageReturn(30_000_00, 1_200_00),
		domain.StateResidency{State: "NY", Status: domain.ResidencyFullYear})

	if out.State != "NY" || out.ApportionmentRatio != 1 {
		t.Fatalf("state/ratio = %s/%v", out.State, out.ApportionmentRatio)
	}
	if out.TaxableIncome.Amount != 22_000_00 {
		t.Fatalf("taxable = %d, want 2200000", out.TaxableIncome.Amount)
	}
	// 30,000 AGI is over the 28,000 household-credit ceiling.
	if out.Credits.Amount != 0 {
		t.Fatalf("credits = %d, want 0", out.Credits.Amount)
	}
	if out.Tax.Amount != 1_045_00 {
		t.Fatalf("tax = %d, want 104500", out.Tax.Amount)
	}
	if out.Overpaid.Amount != 155_00 {
		t.Fatalf("overpaid = %d, want 15500", out.Overpaid.Amount)
	}
}

func TestComputeHouseholdCredit(t *testing.T) {
	r := nyWageReturn(25_000_00, 0)
	r.Dependents = []domain.Dependent{
		{Name: "a", TIN: "t-a", Age: 7, Relationship: domain.RelationshipChild, MonthsInHome: 12},
		{Name: "b", TIN: "t-b", Age: 9, Relationship: domain.RelationshipChild, MonthsInHome: 12},
	}
	out := computeState(t, r, domain.StateResidency{State: "NY", Status: domain.ResidencyFullYear})
	// Base 75 plus 15 per dependent.
	if out.Credits.Amount != 105_00 {
		t.Fatalf("credits = %d, want 10500", out.Credits.Amount)
	}
	if out.Tax.Amount != 665_00 {
		t.Fatalf("tax = %d, want 66500", out.Tax.Amount)
	}
}

func TestComputeHouseholdCreditLimitedToTax(t *testing.T) {
	out := computeState(t, nyWageReturn(9_000_00, 0),
		domain.StateResidency{State: "NY", Status: domain.ResidencyFullYear})
	// Taxable income 1,000 yields 40 of tax; the 75 credit is clamped.
	if out.Credits.Amount != 40_00 {
		t.Fatalf("credits = %d, want 4000", out.Credits.Amount)
	}
	if out.Tax.Amount != 0 {
		t.Fatalf("tax = %d, want 0", out.Tax.Amount)
	}
}

func TestComputeNonresident(t *testing.T) {
	out := computeState(t, nyWageReturn(30_000_00, 0),
		domain.StateResidency{State: "NY", Status: domain.ResidencyNonresident})
	if out.AGI.Amount != 0 || out.Tax.Amount != 0 {
		t.Fatalf("AGI/tax = %d/%d, want 0/0", out.AGI.Amount, out.Tax.Amount)
	}
}

func TestParamsCarryForwardTo2025(t *testing.T) {
	p24, p25 := params2024(), params2025()
	if p25.Year != 2025 {
		t.Fatalf("year = %d", p25.Year)
	}
	if p25.StandardDeduction != p24.StandardDeduction {
		t.Fatal("2025 standard deduction should match 2024")
	}
	if p25.HouseholdCreditCeiling != p24.HouseholdCreditCeiling {
		t.Fatal("2025 credit ceiling should match 2024")
	}
}
