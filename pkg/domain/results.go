package domain

// ScheduleAResult holds the itemized-deduction line items. Node ids follow
// the printed schedule: scheduleA.line4 is deductible medical, line5e the
// capped SALT deduction, line17 the itemized total.
type ScheduleAResult struct {
	Medical            TracedValue `json:"medical"`
	SALTRaw            TracedValue `json:"salt_raw"`
	SALT               TracedValue `json:"salt"`
	MortgageInterest   TracedValue `json:"mortgage_interest"`
	InvestmentInterest TracedValue `json:"investment_interest"`
	Charitable         TracedValue `json:"charitable"`
	Total              TracedValue `json:"total"`
}

// ScheduleBResult aggregates interest and ordinary dividends and reports
// whether either total crosses the filing threshold that requires the schedule.
type ScheduleBResult struct {
	Interest          TracedValue `json:"interest"`
	OrdinaryDividends TracedValue `json:"ordinary_dividends"`
	Required          bool        `json:"required"`
}

// ScheduleCResult is the aggregated business profit-and-loss, with one net
// profit node per business feeding the total.
type ScheduleCResult struct {
	PerBusiness []TracedValue `json:"per_business"`
	NetProfit   TracedValue   `json:"net_profit"`
}

// ScheduleSEResult holds the self-employment tax pieces. NetEarnings is the
// unmodified 92.35% figure also consumed by the Additional Medicare Tax module.
type ScheduleSEResult struct {
	NetEarnings       TracedValue `json:"net_earnings"`
	SocialSecurityTax TracedValue `json:"social_security_tax"`
	MedicareTax       TracedValue `json:"medicare_tax"`
	Total             TracedValue `json:"total"`
	HalfDeduction     TracedValue `json:"half_deduction"`
}

// EITCResult reports the earned income credit and both evaluation bases; the
// claimed credit is the minimum of the two.
type EITCResult struct {
	Eligible           bool        `json:"eligible"`
	IneligibleReason   string      `json:"ineligible_reason,omitempty"`
	QualifyingChildren int         `json:"qualifying_children"`
	AtEarnedIncome     TracedValue `json:"at_earned_income"`
	AtAGI              TracedValue `json:"at_agi"`
	Credit             TracedValue `json:"credit"`
}

// FTCResult reports the foreign tax credit, its limitation, and any excess
// foreign tax that was paid but not creditable this year.
type FTCResult struct {
	ForeignTaxPaid      TracedValue `json:"foreign_tax_paid"`
	ForeignSourceIncome TracedValue `json:"foreign_source_income"`
	Limitation          TracedValue `json:"limitation"`
	Credit              TracedValue `json:"credit"`
	Excess              TracedValue `json:"excess"`
	DirectElection      bool        `json:"direct_election"`
}

// Form1040Result is the canonical federal result: one traced value per line,
// keyed by stable dotted node ids (form1040.line11 is AGI). Inapplicable
// schedules are explicit nulls, never omitted keys.
type Form1040Result struct {
	Wages               TracedValue `json:"wages"`
	TaxableInterest     TracedValue `json:"taxable_interest"`
	QualifiedDividends  TracedValue `json:"qualified_dividends"`
	OrdinaryDividends   TracedValue `json:"ordinary_dividends"`
	CapitalGain         TracedValue `json:"capital_gain"`
	OtherIncome         TracedValue `json:"other_income"`
	TotalIncome         TracedValue `json:"total_income"`
	Adjustments         TracedValue `json:"adjustments"`
	AGI                 TracedValue `json:"agi"`
	Deduction           TracedValue `json:"deduction"`
	TaxableIncome       TracedValue `json:"taxable_income"`
	Tax                 TracedValue `json:"tax"`
	ChildTaxCredit      TracedValue `json:"child_tax_credit"`
	DependentCareCredit TracedValue `json:"dependent_care_credit"`
	ForeignTaxCredit    TracedValue `json:"foreign_tax_credit"`
	TotalCredits        TracedValue `json:"total_credits"`
	TaxAfterCredits     TracedValue `json:"tax_after_credits"`
	SelfEmploymentTax   TracedValue `json:"self_employment_tax"`
	AdditionalMedicare  TracedValue `json:"additional_medicare_tax"`
	NIIT                TracedValue `json:"niit"`
	TotalTax            TracedValue `json:"total_tax"`
	Withholding         TracedValue `json:"withholding"`
	EstimatedPayments   TracedValue `json:"estimated_payments"`
	EarnedIncomeCredit  TracedValue `json:"earned_income_credit"`
	TotalPayments       TracedValue `json:"total_payments"`
	Overpaid            TracedValue `json:"overpaid"`
	AmountOwed          TracedValue `json:"amount_owed"`

	ScheduleA  *ScheduleAResult  `json:"schedule_a"`
	ScheduleB  *ScheduleBResult  `json:"schedule_b"`
	ScheduleC  *ScheduleCResult  `json:"schedule_c"`
	ScheduleSE *ScheduleSEResult `json:"schedule_se"`
	EITC       *EITCResult       `json:"eitc"`
	FTC        *FTCResult        `json:"ftc"`
}

// ReviewSection groups node ids for the review UI, in display order.
type ReviewSection struct {
	Title   string   `json:"title"`
	NodeIDs []string `json:"node_ids"`
}

// StateComputeResult is the normalized per-state summary. Detail carries the
// state module's own result struct opaquely; TraceRootIDs lists the node ids
// the trace visualizer should project for this state.
type StateComputeResult struct {
	State              string      `json:"state"`
	Name               string      `json:"name"`
	ApportionmentRatio float64     `json:"apportionment_ratio"`
	AGI                TracedValue `json:"agi"`
	TaxableIncome      TracedValue `json:"taxable_income"`
	Tax                TracedValue `json:"tax"`
	Credits            TracedValue `json:"credits"`
	Withholding        TracedValue `json:"withholding"`
	Overpaid           TracedValue `json:"overpaid"`
	AmountOwed         TracedValue `json:"amount_owed"`
	Detail             any         `json:"detail,omitempty"`
	TraceRootIDs       []string    `json:"trace_root_ids"`
}

// ReturnResult is the complete output of one computation: the federal result,
// every selected state result, validation findings, and the trace graph that
// answers explain lookups for any node id.
type ReturnResult struct {
	Year     int                  `json:"year"`
	Federal  Form1040Result       `json:"federal"`
	States   []StateComputeResult `json:"states"`
	Findings []Finding            `json:"findings"`

	Trace *TraceGraph `json:"-"`
}

// Explain returns the duplicated compute tree rooted at the node id.
func (r *ReturnResult) Explain(nodeID string) (*ComputeTrace, error) {
	return r.Trace.Explain(nodeID)
}
