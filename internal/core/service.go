package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"taxcore/internal/blob"
	"taxcore/pkg/domain"
)

// Service wraps the pure engine with persistence and observability. Every
// operation is instrumented through the configured recorder and tracer; the
// engine itself stays side-effect free.
type Service struct {
	engine  *Engine
	store   domain.ReturnStore
	blobs   blob.Store
	metrics MetricsRecorder
	tracer  Tracer
	logger  Logger
	clock   func() time.Time
}

// ServiceOption customizes a service at construction time.
type ServiceOption func(*Service)

// WithReturnStore attaches a durable store for saved returns.
func WithReturnStore(store domain.ReturnStore) ServiceOption {
	return func(s *Service) { s.store = store }
}

// WithBlobStore attaches blob storage for document scans and filled forms.
func WithBlobStore(store blob.Store) ServiceOption {
	return func(s *Service) { s.blobs = store }
}

// WithMetricsRecorder overrides the metrics sink.
func WithMetricsRecorder(rec MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithTracer overrides the tracer.
func WithTracer(tr Tracer) ServiceOption {
	return func(s *Service) {
		if tr != nil {
			s.tracer = tr
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(l Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source, used by tests for stable timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
	}
}

// NewService constructs a service around an engine.
func NewService(engine *Engine, opts ...ServiceOption) *Service {
	s := &Service{
		engine:  engine,
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		logger:  noopLogger{},
		clock:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine exposes the underlying compute engine.
func (s *Service) Engine() *Engine { return s.engine }

func (s *Service) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := s.clock()
	ctx, span := s.tracer.Start(ctx, operation)
	err := fn(ctx)
	span.End(err)
	s.metrics.Observe(ctx, operation, err == nil, s.clock().Sub(start))
	if err != nil {
		s.logger.Printf("%s failed: %v", operation, err)
	}
	return err
}

// ComputeReturn runs one full computation.
func (s *Service) ComputeReturn(ctx context.Context, r *domain.TaxReturn) (*domain.ReturnResult, error) {
	var result *domain.ReturnResult
	err := s.instrument(ctx, "compute_return", func(ctx context.Context) error {
		var err error
		result, err = s.engine.Compute(ctx, r)
		return err
	})
	return result, err
}

// Explain computes the return and projects the trace tree for one node id.
func (s *Service) Explain(ctx context.Context, r *domain.TaxReturn, nodeID string) (*domain.ComputeTrace, error) {
	var trace *domain.ComputeTrace
	err := s.instrument(ctx, "explain", func(ctx context.Context) error {
		result, err := s.engine.Compute(ctx, r)
		if err != nil {
			return err
		}
		trace, err = result.Explain(nodeID)
		return err
	})
	return trace, err
}

// SaveReturn computes the return, then persists the raw input alongside a
// compact summary of the result. An existing id keeps its creation timestamp.
func (s *Service) SaveReturn(ctx context.Context, id string, r *domain.TaxReturn) (domain.SavedReturn, error) {
	if s.store == nil {
		return domain.SavedReturn{}, fmt.Errorf("no return store configured")
	}
	if id == "" {
		return domain.SavedReturn{}, fmt.Errorf("return id is required")
	}
	var saved domain.SavedReturn
	err := s.instrument(ctx, "save_return", func(ctx context.Context) error {
		result, err := s.engine.Compute(ctx, r)
		if err != nil {
			return err
		}
		now := s.clock()
		rec := domain.SavedReturn{
			ID:        id,
			Return:    *r,
			Summary:   summarize(result, now),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if prev, ok := s.store.Get(ctx, id); ok {
			rec.CreatedAt = prev.CreatedAt
		}
		saved, err = s.store.Put(ctx, rec)
		return err
	})
	return saved, err
}

// GetReturn loads one saved return.
func (s *Service) GetReturn(ctx context.Context, id string) (domain.SavedReturn, error) {
	if s.store == nil {
		return domain.SavedReturn{}, fmt.Errorf("no return store configured")
	}
	var rec domain.SavedReturn
	err := s.instrument(ctx, "get_return", func(ctx context.Context) error {
		got, ok := s.store.Get(ctx, id)
		if !ok {
			return fmt.Errorf("return %s not found", id)
		}
		rec = got
		return nil
	})
	return rec, err
}

// ListReturns lists every saved return.
func (s *Service) ListReturns(ctx context.Context) ([]domain.SavedReturn, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no return store configured")
	}
	var recs []domain.SavedReturn
	err := s.instrument(ctx, "list_returns", func(ctx context.Context) error {
		recs = s.store.List(ctx)
		return nil
	})
	return recs, err
}

// DeleteReturn removes one saved return.
func (s *Service) DeleteReturn(ctx context.Context, id string) error {
	if s.store == nil {
		return fmt.Errorf("no return store configured")
	}
	return s.instrument(ctx, "delete_return", func(ctx context.Context) error {
		return s.store.Delete(ctx, id)
	})
}

// AttachDocument stores a source-document scan for a saved return.
func (s *Service) AttachDocument(ctx context.Context, returnID, documentID, contentType string, r io.Reader) (blob.Info, error) {
	if s.blobs == nil {
		return blob.Info{}, fmt.Errorf("no blob store configured")
	}
	var info blob.Info
	err := s.instrument(ctx, "attach_document", func(ctx context.Context) error {
		var err error
		info, err = s.blobs.Put(ctx, blob.DocumentKey(returnID, documentID), r, blob.PutOptions{
			ContentType: contentType,
			Metadata:    map[string]string{"return_id": returnID, "document_id": documentID},
		})
		return err
	})
	return info, err
}

// StoreFilledForm stores a filled-form artifact for a saved return.
func (s *Service) StoreFilledForm(ctx context.Context, returnID, form string, r io.Reader) (blob.Info, error) {
	if s.blobs == nil {
		return blob.Info{}, fmt.Errorf("no blob store configured")
	}
	var info blob.Info
	err := s.instrument(ctx, "store_filled_form", func(ctx context.Context) error {
		var err error
		info, err = s.blobs.Put(ctx, blob.FilledFormKey(returnID, form), r, blob.PutOptions{
			ContentType: "application/pdf",
			Metadata:    map[string]string{"return_id": returnID, "form": form},
		})
		return err
	})
	return info, err
}

// ListDocuments lists the stored document scans for a saved return.
func (s *Service) ListDocuments(ctx context.Context, returnID string) ([]blob.Info, error) {
	if s.blobs == nil {
		return nil, fmt.Errorf("no blob store configured")
	}
	var infos []blob.Info
	err := s.instrument(ctx, "list_documents", func(ctx context.Context) error {
		var err error
		infos, err = s.blobs.List(ctx, fmt.Sprintf("returns/%s/docs/", returnID))
		return err
	})
	return infos, err
}

func summarize(result *domain.ReturnResult, at time.Time) *domain.Summary {
	states := make([]string, 0, len(result.States))
	for _, st := range result.States {
		states = append(states, st.State)
	}
	return &domain.Summary{
		Year:          result.Year,
		AGI:           result.Federal.AGI.Amount,
		TaxableIncome: result.Federal.TaxableIncome.Amount,
		TotalTax:      result.Federal.TotalTax.Amount,
		Overpaid:      result.Federal.Overpaid.Amount,
		AmountOwed:    result.Federal.AmountOwed.Amount,
		States:        states,
		FindingCount:  len(result.Findings),
		ComputedAt:    at,
	}
}
