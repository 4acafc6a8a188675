// Package federal implements the federal schedule, credit, and Form 1040
// algorithms. Every function is parameterised by a per-year Constants bundle;
// tax years differ only in the bundle they register, never in logic.
package federal

import (
	"fmt"

	"taxcore/internal/taxmath"
	"taxcore/pkg/domain"
)

// ByStatus holds one dollar parameter per filing status. Qualifying surviving
// spouse uses the married-filing-jointly row.
type ByStatus struct {
	Single          domain.Cents `json:"single"`
	MarriedJoint    domain.Cents `json:"married_joint"`
	MarriedSeparate domain.Cents `json:"married_separate"`
	HeadOfHousehold domain.Cents `json:"head_of_household"`
}

// For resolves the parameter for a filing status.
func (b ByStatus) For(s domain.FilingStatus) domain.Cents {
	switch s {
	case domain.StatusMarriedJoint, domain.StatusQualifyingSurvivingSpouse:
		return b.MarriedJoint
	case domain.StatusMarriedSeparate:
		return b.MarriedSeparate
	case domain.StatusHeadOfHousehold:
		return b.HeadOfHousehold
	default:
		return b.Single
	}
}

// BracketsByStatus holds one rate table per filing status.
type BracketsByStatus struct {
	Single          []taxmath.Bracket `json:"single"`
	MarriedJoint    []taxmath.Bracket `json:"married_joint"`
	MarriedSeparate []taxmath.Bracket `json:"married_separate"`
	HeadOfHousehold []taxmath.Bracket `json:"head_of_household"`
}

// For resolves the rate table for a filing status.
func (b BracketsByStatus) For(s domain.FilingStatus) []taxmath.Bracket {
	switch s {
	case domain.StatusMarriedJoint, domain.StatusQualifyingSurvivingSpouse:
		return b.MarriedJoint
	case domain.StatusMarriedSeparate:
		return b.MarriedSeparate
	case domain.StatusHeadOfHousehold:
		return b.HeadOfHousehold
	default:
		return b.Single
	}
}

// Validate checks every per-status table.
func (b BracketsByStatus) Validate(name string) error {
	for label, table := range map[string][]taxmath.Bracket{
		"single":            b.Single,
		"married_joint":     b.MarriedJoint,
		"married_separate":  b.MarriedSeparate,
		"head_of_household": b.HeadOfHousehold,
	} {
		if err := taxmath.ValidateBrackets(table); err != nil {
			return fmt.Errorf("%s brackets (%s): %w", name, label, err)
		}
	}
	return nil
}

// EITCSchedule is one earned-income-credit piecewise schedule, keyed by
// qualifying-child count.
type EITCSchedule struct {
	PhaseInRate         float64      `json:"phase_in_rate"`
	PlateauStart        domain.Cents `json:"plateau_start"`
	MaxCredit           domain.Cents `json:"max_credit"`
	PhaseOutStartSingle domain.Cents `json:"phase_out_start_single"`
	PhaseOutStartMFJ    domain.Cents `json:"phase_out_start_mfj"`
	PhaseOutRate        float64      `json:"phase_out_rate"`
}

// Constants bundles every year-varying federal parameter. Bundles are built by
// the per-year packages at process start and treated as read-only thereafter.
type Constants struct {
	Year int `json:"year"`

	OrdinaryBrackets     BracketsByStatus `json:"ordinary_brackets"`
	PreferentialBrackets BracketsByStatus `json:"preferential_brackets"`
	StandardDeduction    ByStatus         `json:"standard_deduction"`

	// Schedule A.
	MedicalAGIFloor         float64  `json:"medical_agi_floor"`
	SALTBaseCap             ByStatus `json:"salt_base_cap"`
	SALTFloor               ByStatus `json:"salt_floor"`
	SALTPhaseOutThreshold   ByStatus `json:"salt_phase_out_threshold"`
	SALTPhaseOutRate        float64  `json:"salt_phase_out_rate"`
	MortgageLimitPostTCJA   ByStatus `json:"mortgage_limit_post_tcja"`
	MortgageLimitPreTCJA    ByStatus `json:"mortgage_limit_pre_tcja"`
	CharitableCashAGICap    float64  `json:"charitable_cash_agi_cap"`
	CharitableNoncashAGICap float64  `json:"charitable_noncash_agi_cap"`
	CharitableTotalAGICap   float64  `json:"charitable_total_agi_cap"`

	// Schedule B.
	ScheduleBThreshold domain.Cents `json:"schedule_b_threshold"`

	// Schedule SE.
	SENetEarningsFactor    float64      `json:"se_net_earnings_factor"`
	SocialSecurityWageBase domain.Cents `json:"social_security_wage_base"`
	SocialSecurityRate     float64      `json:"social_security_rate"`
	MedicareRate           float64      `json:"medicare_rate"`

	// Other taxes.
	AdditionalMedicareRate      float64  `json:"additional_medicare_rate"`
	AdditionalMedicareThreshold ByStatus `json:"additional_medicare_threshold"`
	NIITRate                    float64  `json:"niit_rate"`
	NIITThreshold               ByStatus `json:"niit_threshold"`

	// Earned income credit. Schedules are keyed by qualifying-child count,
	// 0 through 3; larger families use the last schedule.
	EITCSchedules             [4]EITCSchedule `json:"eitc_schedules"`
	EITCInvestmentIncomeLimit domain.Cents    `json:"eitc_investment_income_limit"`
	EITCMinAge                int             `json:"eitc_min_age"`
	EITCMaxAge                int             `json:"eitc_max_age"`
	EITCChildAgeLimit         int             `json:"eitc_child_age_limit"`
	EITCStudentAgeLimit       int             `json:"eitc_student_age_limit"`
	EITCResidencyMonthsMin    int             `json:"eitc_residency_months_min"`

	// Child tax credit.
	CTCPerChild          domain.Cents `json:"ctc_per_child"`
	CTCChildAgeLimit     int          `json:"ctc_child_age_limit"`
	CTCPhaseOutThreshold ByStatus     `json:"ctc_phase_out_threshold"`
	CTCPhaseOutPerStep   domain.Cents `json:"ctc_phase_out_per_step"`
	CTCPhaseOutStep      domain.Cents `json:"ctc_phase_out_step"`

	// Dependent care credit.
	DependentCareExpenseCapOne  domain.Cents `json:"dependent_care_expense_cap_one"`
	DependentCareExpenseCapMany domain.Cents `json:"dependent_care_expense_cap_many"`
	DependentCareMaxRate        float64      `json:"dependent_care_max_rate"`
	DependentCareMinRate        float64      `json:"dependent_care_min_rate"`
	DependentCareRateFloorAGI   domain.Cents `json:"dependent_care_rate_floor_agi"`
	DependentCareRateStepAGI    domain.Cents `json:"dependent_care_rate_step_agi"`
	DependentCareAgeLimit       int          `json:"dependent_care_age_limit"`

	// Foreign tax credit.
	FTCDirectElectionThreshold ByStatus `json:"ftc_direct_election_threshold"`
}

// Validate rejects malformed bundles. Year packages run it at registration so
// a bad table fails fast at process start, naming the defect.
func (c Constants) Validate() error {
	if c.Year == 0 {
		return fmt.Errorf("constants: year is zero")
	}
	if err := c.OrdinaryBrackets.Validate("ordinary"); err != nil {
		return fmt.Errorf("year %d: %w", c.Year, err)
	}
	if err := c.PreferentialBrackets.Validate("preferential"); err != nil {
		return fmt.Errorf("year %d: %w", c.Year, err)
	}
	if c.SENetEarningsFactor <= 0 || c.SENetEarningsFactor > 1 {
		return fmt.Errorf("year %d: se net earnings factor %v outside (0,1]", c.Year, c.SENetEarningsFactor)
	}
	if c.SocialSecurityWageBase <= 0 {
		return fmt.Errorf("year %d: social security wage base not set", c.Year)
	}
	for i, s := range c.EITCSchedules {
		if s.PhaseOutRate < 0 || s.PhaseInRate < 0 {
			return fmt.Errorf("year %d: eitc schedule %d has negative rate", c.Year, i)
		}
	}
	return nil
}

// eitcSchedule resolves the schedule for a qualifying-child count; counts
// beyond the table use the last row.
func (c Constants) eitcSchedule(children int) EITCSchedule {
	if children < 0 {
		children = 0
	}
	if children >= len(c.EITCSchedules) {
		children = len(c.EITCSchedules) - 1
	}
	return c.EITCSchedules[children]
}
