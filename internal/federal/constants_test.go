package federal_test

import (
	"strings"
	"testing"

	"taxcore/internal/federal"
	"taxcore/internal/federal/ty2024"
	"taxcore/internal/federal/ty2025"
	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

func TestYearBundlesValidate(t *testing.T) {
	for _, c := range []federal.Constants{ty2024.Constants(), ty2025.Constants()} {
		if err := c.Validate(); err != nil {
			t.Fatalf("year %d: %v", c.Year, err)
		}
	}
}

func TestConstantsValidateRejectsDefects(t *testing.T) {
	c := ty2025.Constants()
	c.Year = 0
	if err := c.Validate(); err == nil {
		t.Fatal("zero year must fail validation")
	}

	c = ty2025.Constants()
	c.OrdinaryBrackets.Single = []taxmath.Bracket{
		{Rate: 0.12, Floor: 11_925_00},
		{Rate: 0.10, Floor: 0},
	}
	err := c.Validate()
	if err == nil {
		t.Fatal("unsorted brackets must fail validation")
	}
	if !strings.Contains(err.Error(), "ordinary") {
		t.Fatalf("error %q does not name the defective table", err)
	}

	c = ty2025.Constants()
	c.SENetEarningsFactor = 1.5
	if err := c.Validate(); err == nil {
		t.Fatal("out-of-range SE factor must fail validation")
	}
}

func TestByStatusSurvivingSpouseUsesJointRow(t *testing.T) {
	sd := ty2025.Constants().StandardDeduction
	if got := sd.For(domain.StatusQualifyingSurvivingSpouse); got != sd.MarriedJoint {
		t.Fatalf("QSS deduction = %d, want joint row %d", got, sd.MarriedJoint)
	}
	ob := ty2025.Constants().OrdinaryBrackets
	qss := ob.For(domain.StatusQualifyingSurvivingSpouse)
	joint := ob.For(domain.StatusMarriedJoint)
	if len(qss) != len(joint) || qss[len(qss)-1].Floor != joint[len(joint)-1].Floor {
		t.Fatal("QSS brackets must be the joint table")
	}
}

func TestYearBundlesDiffer(t *testing.T) {
	c24, c25 := ty2024.Constants(), ty2025.Constants()
	if c24.Year != 2024 || c25.Year != 2025 {
		t.Fatalf("years = %d, %d", c24.Year, c25.Year)
	}
	if c24.StandardDeduction.Single != 14_600_00 {
		t.Fatalf("2024 single deduction = %d, want 1460000", c24.StandardDeduction.Single)
	}
	if c25.StandardDeduction.Single != 15_000_00 {
		t.Fatalf("2025 single deduction = %d, want 1500000", c25.StandardDeduction.Single)
	}
	if c24.SocialSecurityWageBase >= c25.SocialSecurityWageBase {
		t.Fatal("wage base must be indexed upward year over year")
	}
}
