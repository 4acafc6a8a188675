package core

import (
	"fmt"
	"sort"

	"taxcore/internal/federal"
	"taxcore/internal/federal/ty2024"
	"taxcore/internal/federal/ty2025"
	"taxcore/pkg/stateapi"
	"taxcore/plugins/california"
	"taxcore/plugins/newyork"
	"taxcore/plugins/pennsylvania"
)

// YearModule bundles everything needed to compute one tax year: the federal
// constants and the state-module registry built for that year. Bundles are
// immutable after registration.
type YearModule struct {
	Year      int
	Constants federal.Constants
	States    *stateapi.Registry
}

// Registry maps tax years to their modules. It is populated once at process
// start and read-only afterwards; lookups for unregistered years fail fast.
type Registry struct {
	years map[int]YearModule
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{years: make(map[int]YearModule)}
}

// Register adds a year module. Re-registering a year is a configuration error.
func (r *Registry) Register(m YearModule) error {
	if m.Year == 0 {
		return fmt.Errorf("year module missing tax year")
	}
	if err := m.Constants.Validate(); err != nil {
		return fmt.Errorf("tax year %d: %w", m.Year, err)
	}
	if _, exists := r.years[m.Year]; exists {
		return fmt.Errorf("tax year %d already registered", m.Year)
	}
	r.years[m.Year] = m
	return nil
}

// Lookup returns the module for a tax year. There is no fallback: an
// unregistered year is an error naming the year.
func (r *Registry) Lookup(year int) (YearModule, error) {
	m, ok := r.years[year]
	if !ok {
		return YearModule{}, fmt.Errorf("tax year %d is not registered", year)
	}
	return m, nil
}

// Years returns the registered tax years in ascending order.
func (r *Registry) Years() []int {
	out := make([]int, 0, len(r.years))
	for y := range r.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// NewDefaultRegistry builds the registry with every supported tax year and
// its state modules.
func NewDefaultRegistry() (*Registry, error) {
	reg := NewRegistry()
	for _, year := range []int{2024, 2025} {
		states, err := defaultStates(year)
		if err != nil {
			return nil, err
		}
		constants, err := constantsFor(year)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(YearModule{Year: year, Constants: constants, States: states}); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func constantsFor(year int) (federal.Constants, error) {
	switch year {
	case 2024:
		return ty2024.Constants(), nil
	case 2025:
		return ty2025.Constants(), nil
	default:
		return federal.Constants{}, fmt.Errorf("no federal constants for tax year %d", year)
	}
}

func defaultStates(year int) (*stateapi.Registry, error) {
	reg := stateapi.NewRegistry()

	ca, err := california.NewForYear(year)
	if err != nil {
		return nil, err
	}
	ny, err := newyork.NewForYear(year)
	if err != nil {
		return nil, err
	}
	pa, err := pennsylvania.NewForYear(year)
	if err != nil {
		return nil, err
	}
	for _, m := range []stateapi.Module{ca, ny, pa} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
