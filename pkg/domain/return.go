// Package domain defines the raw tax-return input model, the traced value and
// provenance primitives, the computed result structs, and the review finding
// types shared by the engine and its consumers.
package domain

import "time"

// FilingStatus enumerates the federal filing statuses recognized by the engine.
type FilingStatus string

// Canonical filing statuses. Married-filing-separately halves several caps and
// disqualifies the earned income credit.
const (
	StatusSingle                    FilingStatus = "single"
	StatusMarriedJoint              FilingStatus = "married_joint"
	StatusMarriedSeparate           FilingStatus = "married_separate"
	StatusHeadOfHousehold           FilingStatus = "head_of_household"
	StatusQualifyingSurvivingSpouse FilingStatus = "qualifying_surviving_spouse"
)

// Joint reports whether the status uses married-filing-jointly parameter rows.
func (s FilingStatus) Joint() bool {
	return s == StatusMarriedJoint || s == StatusQualifyingSurvivingSpouse
}

// Relationship enumerates dependent relationships accepted for qualifying-child tests.
type Relationship string

// Relationships that can satisfy the qualifying-child relationship test.
const (
	RelationshipChild       Relationship = "child"
	RelationshipStepchild   Relationship = "stepchild"
	RelationshipFosterChild Relationship = "foster_child"
	RelationshipSibling     Relationship = "sibling"
	RelationshipGrandchild  Relationship = "grandchild"
	RelationshipNieceNephew Relationship = "niece_nephew"
	RelationshipParent      Relationship = "parent"
	RelationshipOther       Relationship = "other"
)

// ResidencyStatus describes a filer's relationship to a state for one tax year.
type ResidencyStatus string

// State residency statuses used by the apportionment helper.
const (
	ResidencyFullYear    ResidencyStatus = "full_year"
	ResidencyPartYear    ResidencyStatus = "part_year"
	ResidencyNonresident ResidencyStatus = "nonresident"
)

// Person identifies a taxpayer or spouse. Age is optional; eligibility gates
// that depend on it only apply when it is known.
type Person struct {
	Name string `json:"name"`
	TIN  string `json:"tin"`
	Age  *int   `json:"age,omitempty"`
}

// Dependent describes a claimed dependent and the facts the qualifying-child
// tests evaluate.
type Dependent struct {
	Name            string       `json:"name"`
	TIN             string       `json:"tin"`
	Age             int          `json:"age"`
	Relationship    Relationship `json:"relationship"`
	MonthsInHome    int          `json:"months_in_home"`
	FullTimeStudent bool         `json:"full_time_student"`
}

// W2 carries the wage-statement boxes the engine reads.
type W2 struct {
	ID                  string  `json:"id"`
	Employer            string  `json:"employer"`
	Wages               Cents   `json:"wages"`
	FederalWithholding  Cents   `json:"federal_withholding"`
	SocialSecurityWages Cents   `json:"social_security_wages"`
	SocialSecurityTax   Cents   `json:"social_security_tax"`
	MedicareWages       Cents   `json:"medicare_wages"`
	MedicareTax         Cents   `json:"medicare_tax"`
	StateCode           string  `json:"state_code,omitempty"`
	StateWages          Cents   `json:"state_wages,omitempty"`
	StateWithholding    Cents   `json:"state_withholding,omitempty"`
	Confidence          float64 `json:"confidence,omitempty"`
}

// Interest1099 carries the 1099-INT boxes the engine reads.
type Interest1099 struct {
	ID                  string  `json:"id"`
	Payer               string  `json:"payer"`
	Interest            Cents   `json:"interest"`
	TaxExemptInterest   Cents   `json:"tax_exempt_interest"`
	FederalWithholding  Cents   `json:"federal_withholding"`
	ForeignTaxPaid      Cents   `json:"foreign_tax_paid"`
	ForeignSourceIncome Cents   `json:"foreign_source_income"`
	Confidence          float64 `json:"confidence,omitempty"`
}

// Dividend1099 carries the 1099-DIV boxes the engine reads.
type Dividend1099 struct {
	ID                       string  `json:"id"`
	Payer                    string  `json:"payer"`
	OrdinaryDividends        Cents   `json:"ordinary_dividends"`
	QualifiedDividends       Cents   `json:"qualified_dividends"`
	CapitalGainDistributions Cents   `json:"capital_gain_distributions"`
	FederalWithholding       Cents   `json:"federal_withholding"`
	ForeignTaxPaid           Cents   `json:"foreign_tax_paid"`
	ForeignSourceIncome      Cents   `json:"foreign_source_income"`
	Confidence               float64 `json:"confidence,omitempty"`
}

// CapitalSale records one disposition reported on Form 8949 input.
type CapitalSale struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Proceeds    Cents   `json:"proceeds"`
	Basis       Cents   `json:"basis"`
	LongTerm    bool    `json:"long_term"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// ExpenseLine is one categorized Schedule C expense.
type ExpenseLine struct {
	Category string `json:"category"`
	Amount   Cents  `json:"amount"`
}

// BusinessEntry is one sole-proprietorship profit-and-loss input (Schedule C).
type BusinessEntry struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	GrossReceipts Cents         `json:"gross_receipts"`
	Returns       Cents         `json:"returns"`
	CostOfGoods   Cents         `json:"cost_of_goods"`
	OtherIncome   Cents         `json:"other_income"`
	Expenses      []ExpenseLine `json:"expenses"`
	Confidence    float64       `json:"confidence,omitempty"`
}

// K1Entry is a pass-through K-1 the engine does not yet model; its presence
// produces a scope finding and a zero pass-through.
type K1Entry struct {
	ID             string `json:"id"`
	Entity         string `json:"entity"`
	OrdinaryIncome Cents  `json:"ordinary_income"`
}

// RentalEntry is a rental activity the engine does not yet model.
type RentalEntry struct {
	ID        string `json:"id"`
	Property  string `json:"property"`
	NetIncome Cents  `json:"net_income"`
}

// ItemizedDetail holds the optional Schedule A inputs. A nil pointer on the
// return means the filer supplied no itemized detail, not that every category
// is zero; consumers must branch on presence explicitly.
type ItemizedDetail struct {
	MedicalExpenses       Cents `json:"medical_expenses"`
	StateIncomeTaxPaid    Cents `json:"state_income_tax_paid"`
	StateSalesTaxPaid     Cents `json:"state_sales_tax_paid"`
	RealEstateTaxes       Cents `json:"real_estate_taxes"`
	PersonalPropertyTaxes Cents `json:"personal_property_taxes"`
	MortgageInterest      Cents `json:"mortgage_interest"`
	MortgagePrincipal     Cents `json:"mortgage_principal"`
	MortgagePreTCJA       bool  `json:"mortgage_pre_tcja"`
	InvestmentInterest    Cents `json:"investment_interest"`
	CashContributions     Cents `json:"cash_contributions"`
	NoncashContributions  Cents `json:"noncash_contributions"`
}

// DependentCareDetail holds the optional dependent-care credit inputs.
type DependentCareDetail struct {
	Expenses Cents `json:"expenses"`
}

// NonresidentAlienDetail marks a return outside the supported residency scope.
type NonresidentAlienDetail struct {
	TreatyCountry string `json:"treaty_country"`
}

// StateResidency selects one state return and describes the filer's residency
// in that state. MoveIn/MoveOut only apply to part-year residents; a missing
// or inverted range falls back to the full year.
type StateResidency struct {
	State             string          `json:"state"`
	Status            ResidencyStatus `json:"status"`
	MoveIn            *time.Time      `json:"move_in,omitempty"`
	MoveOut           *time.Time      `json:"move_out,omitempty"`
	EstimatedPayments Cents           `json:"estimated_payments,omitempty"`
}

// Carryforwards holds prior-year amounts carried into this return.
type Carryforwards struct {
	CapitalLoss Cents `json:"capital_loss"`
}

// TaxReturn is the complete raw input for one computation. The engine never
// mutates it; every computation is a pure projection into a result.
type TaxReturn struct {
	Year       int          `json:"year"`
	Status     FilingStatus `json:"status"`
	Taxpayer   Person       `json:"taxpayer"`
	Spouse     *Person      `json:"spouse,omitempty"`
	Dependents []Dependent  `json:"dependents"`

	W2s        []W2            `json:"w2s"`
	Interest   []Interest1099  `json:"interest_1099"`
	Dividends  []Dividend1099  `json:"dividend_1099"`
	Sales      []CapitalSale   `json:"capital_sales"`
	Businesses []BusinessEntry `json:"businesses"`
	K1s        []K1Entry       `json:"k1s"`
	Rentals    []RentalEntry   `json:"rentals"`

	Itemized         *ItemizedDetail         `json:"itemized,omitempty"`
	DependentCare    *DependentCareDetail    `json:"dependent_care,omitempty"`
	NonresidentAlien *NonresidentAlienDetail `json:"nonresident_alien,omitempty"`

	EstimatedPayments Cents            `json:"estimated_payments"`
	PriorYear         *Carryforwards   `json:"prior_year,omitempty"`
	States            []StateResidency `json:"states"`
}

// DocumentConfidence normalizes an optional per-document OCR confidence:
// an unset (zero) value means the document was entered directly and is
// fully trusted.
func DocumentConfidence(c float64) float64 {
	if c <= 0 || c > 1 {
		return 1
	}
	return c
}
