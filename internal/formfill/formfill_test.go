package formfill

import (
	"testing"

	"taxcore/pkg/domain"
)

func TestDollarsRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		cents domain.Cents
		want  string
	}{
		{0, "0"},
		{49, "0"},
		{50, "1"},
		{5_161_50, "5162"},
		{-49, "0"},
		{-50, "-1"},
		{-123_49, "-123"},
	}
	for _, tc := range cases {
		if got := dollars(tc.cents); got != tc.want {
			t.Fatalf("dollars(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestForm1040ProjectionOrderAndValues(t *testing.T) {
	res := &domain.Form1040Result{}
	res.Wages.Amount = 60_000_00
	res.AGI.Amount = 60_000_00
	res.TaxableIncome.Amount = 45_000_00
	res.TotalTax.Amount = 5_161_50

	fields := Form1040(res)
	if len(fields) == 0 {
		t.Fatal("expected fields")
	}
	if fields[0].Name != "f1040_line1a" || fields[0].Value != "60000" {
		t.Fatalf("unexpected first field: %+v", fields[0])
	}
	byName := make(map[string]string, len(fields))
	for _, f := range fields {
		byName[f.Name] = f.Value
	}
	if byName["f1040_line15"] != "45000" {
		t.Fatalf("taxable income field = %q", byName["f1040_line15"])
	}
	if byName["f1040_line24"] != "5162" {
		t.Fatalf("total tax field = %q", byName["f1040_line24"])
	}
}

func TestReturnProjectionSpansFederalAndStates(t *testing.T) {
	res := &domain.ReturnResult{Year: 2025}
	res.Federal.TotalTax.Amount = 5_161_50
	res.Federal.ScheduleA = &domain.ScheduleAResult{}
	res.Federal.ScheduleA.Total.Amount = 42_500_00
	res.States = append(res.States, domain.StateComputeResult{State: "CA"})
	res.States[0].Tax.Amount = 3_194_98

	byName := make(map[string]string)
	for _, f := range Return(res) {
		byName[f.Name] = f.Value
	}
	if byName["f1040_line24"] != "5162" {
		t.Fatalf("total tax field = %q", byName["f1040_line24"])
	}
	if byName["schedA_line17"] != "42500" {
		t.Fatalf("schedule A total field = %q", byName["schedA_line17"])
	}
	if byName["state_CA_tax"] != "3195" {
		t.Fatalf("state tax field = %q", byName["state_CA_tax"])
	}
}

func TestScheduleANilMeansAbsent(t *testing.T) {
	if fields := ScheduleA(nil); fields != nil {
		t.Fatalf("expected nil for absent schedule, got %v", fields)
	}
}

func TestStateProjectionUsesStateCode(t *testing.T) {
	res := &domain.StateComputeResult{State: "CA"}
	res.Tax.Amount = 1_234_00
	fields := State(res)
	found := false
	for _, f := range fields {
		if f.Name == "state_CA_tax" {
			found = true
			if f.Value != "1234" {
				t.Fatalf("state tax field = %q", f.Value)
			}
		}
	}
	if !found {
		t.Fatalf("missing state_CA_tax in %v", fields)
	}
}
