// Package core wires the year registry, the federal and state computations,
// and the validation engine into one synchronous compute pipeline, and hosts
// the service layer that adds persistence and observability around it.
package core

import (
	"context"
	"fmt"

	"taxcore/internal/validation"
	"taxcore/pkg/domain"
	"taxcore/pkg/stateapi"
)

// Engine computes full returns. It holds only frozen registries, so one
// engine may serve concurrent computations without coordination.
type Engine struct {
	years     *Registry
	validator *validation.Engine
}

// NewEngine constructs an engine over the supplied registries.
func NewEngine(years *Registry, validator *validation.Engine) *Engine {
	return &Engine{years: years, validator: validator}
}

// NewDefaultEngine builds an engine with every supported year and the
// built-in validation rules.
func NewDefaultEngine() (*Engine, error) {
	years, err := NewDefaultRegistry()
	if err != nil {
		return nil, err
	}
	return NewEngine(years, validation.NewDefaultEngine()), nil
}

// Years exposes the registered tax years.
func (e *Engine) Years() []int { return e.years.Years() }

// Compute derives the full result for one return: the federal Form 1040, one
// state result per selected state, and the validation findings. The input is
// never mutated; every call builds a fresh trace graph.
func (e *Engine) Compute(ctx context.Context, r *domain.TaxReturn) (*domain.ReturnResult, error) {
	ym, err := e.years.Lookup(r.Year)
	if err != nil {
		return nil, err
	}

	g := domain.NewTraceGraph()
	fed := ym.Constants.ComputeForm1040(g, r)

	result := &domain.ReturnResult{
		Year:    r.Year,
		Federal: fed,
		Trace:   g,
	}

	seen := make(map[string]bool, len(r.States))
	for _, residency := range r.States {
		if seen[residency.State] {
			return nil, fmt.Errorf("state selection: state %s listed twice", residency.State)
		}
		seen[residency.State] = true
		module, err := ym.States.Lookup(residency.State)
		if err != nil {
			return nil, fmt.Errorf("state selection: %w", err)
		}
		state, err := module.Compute(r, &fed, stateapi.Config{
			Year:      r.Year,
			Graph:     g,
			Residency: residency,
		})
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", residency.State, err)
		}
		result.States = append(result.States, state)
	}

	review, err := e.validator.Evaluate(ctx, r, result)
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	result.Findings = review.Findings

	return result, nil
}
