package domain

import (
	"context"
	"time"
)

// SavedReturn is one persisted return record: the raw input, the most recent
// computed summary (if any), and bookkeeping timestamps. The engine itself is
// stateless; persistence exists so callers can reload and recompute returns.
type SavedReturn struct {
	ID        string    `json:"id"`
	Return    TaxReturn `json:"return"`
	Summary   *Summary  `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is a compact projection of a computed result stored alongside the
// raw return. It repeats amounts only, never provenance; traces are recomputed
// on demand.
type Summary struct {
	Year          int       `json:"year"`
	AGI           Cents     `json:"agi"`
	TaxableIncome Cents     `json:"taxable_income"`
	TotalTax      Cents     `json:"total_tax"`
	Overpaid      Cents     `json:"overpaid"`
	AmountOwed    Cents     `json:"amount_owed"`
	States        []string  `json:"states"`
	FindingCount  int       `json:"finding_count"`
	ComputedAt    time.Time `json:"computed_at"`
}

// ReturnStore is a minimal abstraction over durable backends for saved
// returns. Implementations snapshot the full record set after every mutation.
type ReturnStore interface {
	Put(ctx context.Context, rec SavedReturn) (SavedReturn, error)
	Get(ctx context.Context, id string) (SavedReturn, bool)
	List(ctx context.Context) []SavedReturn
	Delete(ctx context.Context, id string) error
	Close() error
}
