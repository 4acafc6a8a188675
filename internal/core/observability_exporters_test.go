package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestExpvarMetricsRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	ctx := context.Background()
	rec.Observe(ctx, "compute_return", true, 10*time.Millisecond)
	rec.Observe(ctx, "compute_return", true, 5*time.Millisecond)
	rec.Observe(ctx, "compute_return", false, 2*time.Millisecond)
	rec.Observe(ctx, "", true, time.Millisecond)

	snap := rec.Snapshot()
	if snap.DurationsMS["compute_return"] != 17 {
		t.Fatalf("durations = %v", snap.DurationsMS)
	}
	if snap.Results["compute_return"]["success"] != 2 {
		t.Fatalf("success = %v", snap.Results)
	}
	if snap.Results["compute_return"]["error"] != 1 {
		t.Fatalf("error = %v", snap.Results)
	}
	if rec.Name() == "" {
		t.Fatal("generated name is empty")
	}
}

func TestJSONTracerEmitsEntries(t *testing.T) {
	var buf bytes.Buffer
	tr := NewJSONTracer(&buf)

	_, span := tr.Start(context.Background(), "save_return")
	span.End(nil)
	_, span = tr.Start(context.Background(), "save_return")
	span.End(errors.New("boom"))

	entries := tr.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Status != "success" || entries[1].Status != "error" {
		t.Fatalf("statuses = %s, %s", entries[0].Status, entries[1].Status)
	}
	if entries[1].Error != "boom" {
		t.Fatalf("error = %q", entries[1].Error)
	}

	dec := json.NewDecoder(&buf)
	var first JSONTraceEntry
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Operation != "save_return" {
		t.Fatalf("operation = %q", first.Operation)
	}
}
