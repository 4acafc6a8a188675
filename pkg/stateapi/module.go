// Package stateapi defines the stable contract between the engine and state
// return modules, plus the residency apportionment helper they share.
package stateapi

import (
	"fmt"
	"sort"

	"taxcore/pkg/domain"
)

// Aliases keep state modules importable without touching pkg/domain directly.
type (
	ResidencyStatus = domain.ResidencyStatus
	ReviewSection   = domain.ReviewSection
)

// Residency statuses re-exported for module implementations.
const (
	ResidencyFullYear    = domain.ResidencyFullYear
	ResidencyPartYear    = domain.ResidencyPartYear
	ResidencyNonresident = domain.ResidencyNonresident
)

// Config carries the per-computation context handed to a state module: the
// bound tax year, the shared trace graph (state nodes join the same graph the
// federal result wrote), and the filer's residency in this state.
type Config struct {
	Year      int
	Graph     *domain.TraceGraph
	Residency domain.StateResidency
}

// Module is the contract every state return module implements. A module
// instance is bound to one tax year by its registry; Compute is pure and must
// cite federal node ids when it consumes the federal result.
type Module interface {
	Code() string
	Name() string
	Compute(r *domain.TaxReturn, fed *domain.Form1040Result, cfg Config) (domain.StateComputeResult, error)
	ReviewLayout() []domain.ReviewSection
}

// Registry is a frozen lookup table of state modules for one tax year,
// populated once at process start and read-only thereafter.
type Registry struct {
	modules map[string]Module
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds a module. Duplicate codes are a configuration fault.
func (r *Registry) Register(m Module) error {
	if m == nil {
		return fmt.Errorf("state module cannot be nil")
	}
	code := m.Code()
	if code == "" {
		return fmt.Errorf("state module has empty code")
	}
	if _, ok := r.modules[code]; ok {
		return fmt.Errorf("state module %s already registered", code)
	}
	r.modules[code] = m
	return nil
}

// Lookup resolves a module by state code; unknown codes fail naming the code.
func (r *Registry) Lookup(code string) (Module, error) {
	m, ok := r.modules[code]
	if !ok {
		return nil, fmt.Errorf("no state module registered for %q", code)
	}
	return m, nil
}

// Codes returns the registered state codes, sorted.
func (r *Registry) Codes() []string {
	out := make([]string, 0, len(r.modules))
	for code := range r.modules {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
