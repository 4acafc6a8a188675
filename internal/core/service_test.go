package core

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"taxcore/internal/blob"
	persistmem "taxcore/internal/infra/persistence/memory"
)

type recordingMetrics struct {
	mu   sync.Mutex
	ops  []string
	fail []string
}

func (r *recordingMetrics) Observe(_ context.Context, operation string, success bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, operation)
	if !success {
		r.fail = append(r.fail, operation)
	}
}

type recordingSpan struct {
	operation string
	tracer    *recordingTracer
}

func (s recordingSpan) End(err error) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.tracer.ended = append(s.tracer.ended, s.operation)
	if err != nil {
		s.tracer.failed = append(s.tracer.failed, s.operation)
	}
}

type recordingTracer struct {
	mu     sync.Mutex
	ended  []string
	failed []string
}

func (tr *recordingTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, recordingSpan{operation: operation, tracer: tr}
}

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	return NewService(newTestEngine(t), opts...)
}

func TestServiceComputeReturn(t *testing.T) {
	metrics := &recordingMetrics{}
	tracer := &recordingTracer{}
	svc := newTestService(t, WithMetricsRecorder(metrics), WithTracer(tracer))

	res, err := svc.ComputeReturn(context.Background(), testReturn())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Federal.TotalTax.Amount != 5_161_50 {
		t.Fatalf("total tax = %d, want 516150", res.Federal.TotalTax.Amount)
	}
	if len(metrics.ops) != 1 || metrics.ops[0] != "compute_return" {
		t.Fatalf("observed ops = %v", metrics.ops)
	}
	if len(metrics.fail) != 0 {
		t.Fatalf("failed ops = %v", metrics.fail)
	}
	if len(tracer.ended) != 1 || tracer.ended[0] != "compute_return" {
		t.Fatalf("ended spans = %v", tracer.ended)
	}
}

func TestServiceComputeFailureIsObserved(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newTestService(t, WithMetricsRecorder(metrics))
	r := testReturn()
	r.Year = 1999
	if _, err := svc.ComputeReturn(context.Background(), r); err == nil {
		t.Fatal("expected an error")
	}
	if len(metrics.fail) != 1 || metrics.fail[0] != "compute_return" {
		t.Fatalf("failed ops = %v", metrics.fail)
	}
}

func TestServiceExplain(t *testing.T) {
	svc := newTestService(t)
	trace, err := svc.Explain(context.Background(), testReturn(), "form1040.line24")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if trace.NodeID != "form1040.line24" || len(trace.Inputs) == 0 {
		t.Fatalf("trace = %+v", trace)
	}

	if _, err := svc.Explain(context.Background(), testReturn(), "no.such.node"); err == nil {
		t.Fatal("unknown node must fail")
	}
}

func TestServiceSaveGetListDelete(t *testing.T) {
	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := newTestService(t, WithReturnStore(persistmem.NewStore()), WithClock(clock))
	ctx := context.Background()

	saved, err := svc.SaveReturn(ctx, "r-1", testReturn())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.CreatedAt != now || saved.UpdatedAt != now {
		t.Fatalf("timestamps = %v/%v", saved.CreatedAt, saved.UpdatedAt)
	}
	s := saved.Summary
	if s == nil {
		t.Fatal("missing summary")
	}
	if s.Year != 2025 || s.TotalTax != 5_161_50 || s.Overpaid != 838_50 {
		t.Fatalf("summary = %+v", s)
	}
	if len(s.States) != 1 || s.States[0] != "CA" {
		t.Fatalf("summary states = %v", s.States)
	}

	// A second save keeps the creation timestamp and advances the update.
	created := now
	now = now.Add(time.Hour)
	resaved, err := svc.SaveReturn(ctx, "r-1", testReturn())
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if resaved.CreatedAt != created {
		t.Fatalf("created at = %v, want %v", resaved.CreatedAt, created)
	}
	if resaved.UpdatedAt != now {
		t.Fatalf("updated at = %v, want %v", resaved.UpdatedAt, now)
	}

	got, err := svc.GetReturn(ctx, "r-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "r-1" || got.Return.Year != 2025 {
		t.Fatalf("got = %+v", got)
	}

	list, err := svc.ListReturns(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %+v", list)
	}

	if err := svc.DeleteReturn(ctx, "r-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetReturn(ctx, "r-1"); err == nil {
		t.Fatal("deleted return must not resolve")
	}
}

func TestServiceSaveRequiresStoreAndID(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SaveReturn(context.Background(), "r-1", testReturn()); err == nil {
		t.Fatal("save without a store must fail")
	}

	svc = newTestService(t, WithReturnStore(persistmem.NewStore()))
	if _, err := svc.SaveReturn(context.Background(), "", testReturn()); err == nil {
		t.Fatal("save without an id must fail")
	}
}

func TestServiceBlobOperations(t *testing.T) {
	svc := newTestService(t, WithBlobStore(blob.NewMemory()))
	ctx := context.Background()

	info, err := svc.AttachDocument(ctx, "r-1", "w2-1", "application/pdf", strings.NewReader("scan"))
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if info.Key != "returns/r-1/docs/w2-1" {
		t.Fatalf("key = %q", info.Key)
	}

	if _, err := svc.StoreFilledForm(ctx, "r-1", "f1040", strings.NewReader("%PDF-")); err != nil {
		t.Fatalf("store form: %v", err)
	}

	docs, err := svc.ListDocuments(ctx, "r-1")
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 1 || docs[0].Key != "returns/r-1/docs/w2-1" {
		t.Fatalf("docs = %+v", docs)
	}
}

func TestServiceBlobUnconfigured(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AttachDocument(context.Background(), "r-1", "d-1", "", strings.NewReader("x")); err == nil {
		t.Fatal("attach without a blob store must fail")
	}
}
