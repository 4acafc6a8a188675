package domain

// Severity ranks a review finding.
type Severity string

// Finding severities. No severity blocks computation; error marks returns the
// engine cannot faithfully compute, warning marks degraded or suspect figures,
// info marks always-on scope disclosures.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one review annotation. Codes are stable strings consumers key off.
type Finding struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ReviewResult aggregates findings from the validation engine.
type ReviewResult struct {
	Findings []Finding `json:"findings"`
}

// Merge appends findings from another result.
func (r *ReviewResult) Merge(other ReviewResult) {
	if len(other.Findings) == 0 {
		return
	}
	r.Findings = append(r.Findings, other.Findings...)
}

// HasErrors reports whether any finding carries error severity.
func (r ReviewResult) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
