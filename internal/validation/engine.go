// Package validation scans a populated return and its computed result for
// unsupported-feature and data-quality conditions. Findings annotate the
// result; they never halt or alter a computation.
package validation

import (
	"context"

	"taxcore/pkg/domain"
)

// Rule inspects a return alongside its computed result.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, r *domain.TaxReturn, res *domain.ReturnResult) (domain.ReviewResult, error)
}

// Engine orchestrates rule evaluation.
type Engine struct {
	rules []Rule
}

// NewEngine constructs an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// NewDefaultEngine builds an engine with the built-in rule set.
func NewDefaultEngine() *Engine {
	engine := NewEngine()
	engine.Register(NewScopeDisclosureRule())
	engine.Register(NewUnsupportedFeatureRule())
	engine.Register(NewW2ConsistencyRule())
	engine.Register(NewForeignTaxConsistencyRule())
	return engine
}

// Register appends a rule to the engine.
func (e *Engine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and aggregates their findings.
func (e *Engine) Evaluate(ctx context.Context, r *domain.TaxReturn, res *domain.ReturnResult) (domain.ReviewResult, error) {
	var combined domain.ReviewResult
	for _, rule := range e.rules {
		out, err := rule.Evaluate(ctx, r, res)
		if err != nil {
			return domain.ReviewResult{}, err
		}
		combined.Merge(out)
	}
	return combined, nil
}
