// Package ty2025 bundles the 2025 federal constants.
package ty2025

import (
	"taxcore/internal/federal"
	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// Constants returns the frozen 2025 parameter bundle.
func Constants() federal.Constants {
	return federal.Constants{
		Year: 2025,
		OrdinaryBrackets: federal.BracketsByStatus{
			Single: brackets(
				0.10, 0,
				0.12, 11_925_00,
				0.22, 48_475_00,
				0.24, 103_350_00,
				0.32, 197_300_00,
				0.35, 250_525_00,
				0.37, 626_350_00,
			),
			MarriedJoint: brackets(
				0.10, 0,
				0.12, 23_850_00,
				0.22, 96_950_00,
				0.24, 206_700_00,
				0.32, 394_600_00,
				0.35, 501_050_00,
				0.37, 751_600_00,
			),
			MarriedSeparate: brackets(
				0.10, 0,
				0.12, 11_925_00,
				0.22, 48_475_00,
				0.24, 103_350_00,
				0.32, 197_300_00,
				0.35, 250_525_00,
				0.37, 375_800_00,
			),
			HeadOfHousehold: brackets(
				0.10, 0,
				0.12, 17_000_00,
				0.22, 64_850_00,
				0.24, 103_350_00,
				0.32, 197_300_00,
				0.35, 250_500_00,
				0.37, 626_350_00,
			),
		},
		PreferentialBrackets: federal.BracketsByStatus{
			Single:          brackets(0, 0, 0.15, 48_350_00, 0.20, 533_400_00),
			MarriedJoint:    brackets(0, 0, 0.15, 96_700_00, 0.20, 600_050_00),
			MarriedSeparate: brackets(0, 0, 0.15, 48_350_00, 0.20, 300_000_00),
			HeadOfHousehold: brackets(0, 0, 0.15, 64_750_00, 0.20, 566_700_00),
		},
		StandardDeduction: federal.ByStatus{
			Single:          15_000_00,
			MarriedJoint:    30_000_00,
			MarriedSeparate: 15_000_00,
			HeadOfHousehold: 22_500_00,
		},

		MedicalAGIFloor: 0.075,
		SALTBaseCap: federal.ByStatus{
			Single:          40_000_00,
			MarriedJoint:    40_000_00,
			MarriedSeparate: 20_000_00,
			HeadOfHousehold: 40_000_00,
		},
		SALTFloor: federal.ByStatus{
			Single:          10_000_00,
			MarriedJoint:    10_000_00,
			MarriedSeparate: 5_000_00,
			HeadOfHousehold: 10_000_00,
		},
		SALTPhaseOutThreshold: federal.ByStatus{
			Single:          500_000_00,
			MarriedJoint:    500_000_00,
			MarriedSeparate: 250_000_00,
			HeadOfHousehold: 500_000_00,
		},
		SALTPhaseOutRate: 0.30,
		MortgageLimitPostTCJA: federal.ByStatus{
			Single:          750_000_00,
			MarriedJoint:    750_000_00,
			MarriedSeparate: 375_000_00,
			HeadOfHousehold: 750_000_00,
		},
		MortgageLimitPreTCJA: federal.ByStatus{
			Single:          1_000_000_00,
			MarriedJoint:    1_000_000_00,
			MarriedSeparate: 500_000_00,
			HeadOfHousehold: 1_000_000_00,
		},
		CharitableCashAGICap:    0.60,
		CharitableNoncashAGICap: 0.30,
		CharitableTotalAGICap:   0.60,

		ScheduleBThreshold: 1_500_00,

		SENetEarningsFactor:    0.9235,
		SocialSecurityWageBase: 176_100_00,
		SocialSecurityRate:     0.124,
		MedicareRate:           0.029,

		AdditionalMedicareRate: 0.009,
		AdditionalMedicareThreshold: federal.ByStatus{
			Single:          200_000_00,
			MarriedJoint:    250_000_00,
			MarriedSeparate: 125_000_00,
			HeadOfHousehold: 200_000_00,
		},
		NIITRate: 0.038,
		NIITThreshold: federal.ByStatus{
			Single:          200_000_00,
			MarriedJoint:    250_000_00,
			MarriedSeparate: 125_000_00,
			HeadOfHousehold: 200_000_00,
		},

		EITCSchedules: [4]federal.EITCSchedule{
			{PhaseInRate: 0.0765, PlateauStart: 8_490_00, MaxCredit: 649_00, PhaseOutStartSingle: 10_620_00, PhaseOutStartMFJ: 17_730_00, PhaseOutRate: 0.0765},
			{PhaseInRate: 0.34, PlateauStart: 12_730_00, MaxCredit: 4_328_00, PhaseOutStartSingle: 23_350_00, PhaseOutStartMFJ: 30_470_00, PhaseOutRate: 0.1598},
			{PhaseInRate: 0.40, PlateauStart: 17_880_00, MaxCredit: 7_152_00, PhaseOutStartSingle: 23_350_00, PhaseOutStartMFJ: 30_470_00, PhaseOutRate: 0.2106},
			{PhaseInRate: 0.45, PlateauStart: 17_880_00, MaxCredit: 8_046_00, PhaseOutStartSingle: 23_350_00, PhaseOutStartMFJ: 30_470_00, PhaseOutRate: 0.2106},
		},
		EITCInvestmentIncomeLimit: 11_950_00,
		EITCMinAge:                25,
		EITCMaxAge:                64,
		EITCChildAgeLimit:         19,
		EITCStudentAgeLimit:       24,
		EITCResidencyMonthsMin:    6,

		CTCPerChild:      2_200_00,
		CTCChildAgeLimit: 17,
		CTCPhaseOutThreshold: federal.ByStatus{
			Single:          200_000_00,
			MarriedJoint:    400_000_00,
			MarriedSeparate: 200_000_00,
			HeadOfHousehold: 200_000_00,
		},
		CTCPhaseOutPerStep: 50_00,
		CTCPhaseOutStep:    1_000_00,

		DependentCareExpenseCapOne:  3_000_00,
		DependentCareExpenseCapMany: 6_000_00,
		DependentCareMaxRate:        0.35,
		DependentCareMinRate:        0.20,
		DependentCareRateFloorAGI:   15_000_00,
		DependentCareRateStepAGI:    2_000_00,
		DependentCareAgeLimit:       13,

		FTCDirectElectionThreshold: federal.ByStatus{
			Single:          300_00,
			MarriedJoint:    600_00,
			MarriedSeparate: 300_00,
			HeadOfHousehold: 300_00,
		},
	}
}

func brackets(pairs ...float64) []taxmath.Bracket {
	out := make([]taxmath.Bracket, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, taxmath.Bracket{Rate: pairs[i], Floor: domain.Cents(pairs[i+1])})
	}
	return out
}
