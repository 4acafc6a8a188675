package core

import (
	"context"
	"strings"
	"testing"

	"taxcore/pkg/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := NewDefaultEngine()
	if err != nil {
		t.Fatalf("default engine: %v", err)
	}
	return eng
}

func testReturn() *domain.TaxReturn {
	return &domain.TaxReturn{
		Year:   2025,
		Status: domain.StatusSingle,
		W2s: []domain.W2{{
			ID: "w2-1", Employer: "Acme", Wages: 60_000_00,
			FederalWithholding:  6_000_00,
			SocialSecurityWages: 60_000_00, SocialSecurityTax: 3_720_00,
			MedicareWages: 60_000_00, MedicareTax: 870_00,
			StateCode: "CA", StateWages: 60_000_00, StateWithholding: 2_500_00,
		}},
		States: []domain.StateResidency{{State: "CA", Status: domain.ResidencyFullYear}},
	}
}

func TestEngineComputeFederalAndState(t *testing.T) {
	eng := newTestEngine(t)
	res, err := eng.Compute(context.Background(), testReturn())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Federal.Tax.Amount != 5_161_50 {
		t.Fatalf("federal tax = %d, want 516150", res.Federal.Tax.Amount)
	}
	if len(res.States) != 1 || res.States[0].State != "CA" {
		t.Fatalf("states = %+v", res.States)
	}
	if res.States[0].Tax.Amount <= 0 {
		t.Fatalf("CA tax = %d, want positive", res.States[0].Tax.Amount)
	}

	// Federal and state nodes share one graph, so a state explain reaches
	// federal document nodes.
	trace, err := res.Explain("ca.agi")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if len(trace.Inputs) == 0 || trace.Inputs[0].NodeID != "form1040.line11" {
		t.Fatalf("ca.agi inputs = %+v", trace.Inputs)
	}
}

func TestEngineAlwaysEmitsScopeDisclosure(t *testing.T) {
	eng := newTestEngine(t)
	res, err := eng.Compute(context.Background(), testReturn())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	found := false
	for _, f := range res.Findings {
		if f.Code == "scope.disclosure" && f.Severity == domain.SeverityInfo {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing scope disclosure in %+v", res.Findings)
	}
}

func TestEngineUnsupportedFeatureFindings(t *testing.T) {
	eng := newTestEngine(t)
	r := testReturn()
	r.K1s = []domain.K1Entry{{ID: "k1-1", Entity: "Partners LP", OrdinaryIncome: 5_000_00}}
	res, err := eng.Compute(context.Background(), r)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	found := false
	for _, f := range res.Findings {
		if f.Code == "scope.k1_passthrough" && f.Severity == domain.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing K-1 scope finding in %+v", res.Findings)
	}
	// The K-1 degrades to zero income, never into the totals.
	if res.Federal.TotalIncome.Amount != 60_000_00 {
		t.Fatalf("total income = %d, want 6000000", res.Federal.TotalIncome.Amount)
	}
}

func TestEngineUnknownYear(t *testing.T) {
	eng := newTestEngine(t)
	r := testReturn()
	r.Year = 1999
	if _, err := eng.Compute(context.Background(), r); err == nil {
		t.Fatal("expected an error for an unregistered year")
	}
}

func TestEngineUnknownState(t *testing.T) {
	eng := newTestEngine(t)
	r := testReturn()
	r.States = []domain.StateResidency{{State: "TX", Status: domain.ResidencyFullYear}}
	_, err := eng.Compute(context.Background(), r)
	if err == nil {
		t.Fatal("expected an error for an unregistered state")
	}
	if !strings.Contains(err.Error(), "TX") {
		t.Fatalf("error %q does not name the state", err)
	}
}

func TestEngineDuplicateStateSelection(t *testing.T) {
	eng := newTestEngine(t)
	r := testReturn()
	r.States = append(r.States, r.States[0])
	_, err := eng.Compute(context.Background(), r)
	if err == nil {
		t.Fatal("expected an error for a state listed twice")
	}
	if !strings.Contains(err.Error(), "CA") || !strings.Contains(err.Error(), "twice") {
		t.Fatalf("error %q does not name the duplicate state", err)
	}
}

func TestEngineMultiState(t *testing.T) {
	eng := newTestEngine(t)
	r := testReturn()
	r.W2s = append(r.W2s, domain.W2{
		ID: "w2-2", Employer: "Empire Co", Wages: 20_000_00,
		SocialSecurityWages: 20_000_00, MedicareWages: 20_000_00,
		StateCode: "NY", StateWages: 20_000_00, StateWithholding: 900_00,
	})
	r.States = []domain.StateResidency{
		{State: "CA", Status: domain.ResidencyPartYear},
		{State: "NY", Status: domain.ResidencyNonresident},
	}
	res, err := eng.Compute(context.Background(), r)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(res.States) != 2 {
		t.Fatalf("states = %+v", res.States)
	}
	if res.States[0].State != "CA" || res.States[1].State != "NY" {
		t.Fatalf("state order = %s, %s", res.States[0].State, res.States[1].State)
	}
	// Each module reads only its own W-2 withholding.
	if res.States[0].Withholding.Amount != 2_500_00 {
		t.Fatalf("CA withholding = %d, want 250000", res.States[0].Withholding.Amount)
	}
	if res.States[1].Withholding.Amount != 900_00 {
		t.Fatalf("NY withholding = %d, want 90000", res.States[1].Withholding.Amount)
	}
}
