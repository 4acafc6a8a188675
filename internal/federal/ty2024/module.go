// Package ty2024 bundles the 2024 federal constants.
package ty2024

import (
	"taxcore/internal/federal"
	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// Constants returns the frozen 2024 parameter bundle. 2024 predates the
// raised SALT cap; base cap and floor are both the flat $10,000 ($5,000 MFS),
// which makes the phase-out arithmetic a no-op.
func Constants() federal.Constants {
	return federal.Constants{
		Year: 2024,
		OrdinaryBrackets: federal.BracketsByStatus{
			Single: brackets(
				0.10, 0,
				0.12, 11_600_00,
				0.22, 47_150_00,
				0.24, 100_525_00,
				0.32, 191_950_00,
				0.35, 243_725_00,
				0.37, 609_350_00,
			),
			MarriedJoint: brackets(
				0.10, 0,
				0.12, 23_200_00,
				0.22, 94_300_00,
				0.24, 201_050_00,
				0.32, 383_900_00,
				0.35, 487_450_00,
				0.37, 731_200_00,
			),
			MarriedSeparate: brackets(
				0.10, 0,
				0.12, 11_600_00,
				0.22, 47_150_00,
				0.24, 100_525_00,
				0.32, 191_950_00,
				0.35, 243_725_00,
				0.37, 365_600_00,
			),
			HeadOfHousehold: brackets(
				0.10, 0,
				0.12, 16_550_00,
				0.22, 63_100_00,
				0.24, 100_500_00,
				0.32, 191_950_00,
				0.35, 243_700_00,
				0.37, 609_350_00,
			),
		},
		PreferentialBrackets: federal.BracketsByStatus{
			Single:          brackets(0, 0, 0.15, 47_025_00, 0.20, 518_900_00),
			MarriedJoint:    brackets(0, 0, 0.15, 94_050_00, 0.20, 583_750_00),
			MarriedSeparate: brackets(0, 0, 0.15, 47_025_00, 0.20, 291_850_00),
			HeadOfHousehold: brackets(0, 0, 0.15, 63_000_00, 0.20, 551_350_00),
		},
		StandardDeduction: federal.ByStatus{
			Single:          14_600_00,
			MarriedJoint:    29_200_00,
			MarriedSeparate: 14_600_00,
			HeadOfHousehold: 21_900_00,
		},

		MedicalAGIFloor: 0.075,
		SALTBaseCap: federal.ByStatus{
			Single:          10_000_00,
			MarriedJoint:    10_000_00,
			MarriedSeparate: 5_000_00,
			HeadOfHousehold: 10_000_00,
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
		SocialSecurityWageBase: 168_600_00,
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
			{PhaseInRate: 0.0765, PlateauStart: 8_260_00, MaxCredit: 632_00, PhaseOutStartSingle: 10_330_00, PhaseOutStartMFJ: 17_250_00, PhaseOutRate: 0.0765},
			{PhaseInRate: 0.34, PlateauStart: 12_390_00, MaxCredit: 4_213_00, PhaseOutStartSingle: 22_720_00, PhaseOutStartMFJ: 29_640_00, PhaseOutRate: 0.1598},
			{PhaseInRate: 0.40, PlateauStart: 17_400_00, MaxCredit: 6_960_00, PhaseOutStartSingle: 22_720_00, PhaseOutStartMFJ: 29_640_00, PhaseOutRate: 0.2106},
			{PhaseInRate: 0.45, PlateauStart: 17_400_00, MaxCredit: 7_830_00, PhaseOutStartSingle: 22_720_00, PhaseOutStartMFJ: 29_640_00, PhaseOutRate: 0.2106},
		},
		EITCInvestmentIncomeLimit: 11_600_00,
		EITCMinAge:                25,
		EITCMaxAge:                64,
		EITCChildAgeLimit:         19,
		EITCStudentAgeLimit:       24,
		EITCResidencyMonthsMin:    6,

		CTCPerChild:      2_000_00,
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
