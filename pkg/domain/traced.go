package domain

import (
	"fmt"
	"sort"
)

// Cents is an exact monetary amount in integer cents. All engine arithmetic
// is integer arithmetic; rounding happens once per derived figure.
type Cents int64

// SourceKind tags the provenance variant of a traced value.
type SourceKind string

// Provenance variants.
const (
	// SourceDocument marks a value read directly from a source document field.
	SourceDocument SourceKind = "document"
	// SourceComputed marks a value derived from earlier nodes.
	SourceComputed SourceKind = "computed"
)

// Source describes where a traced value came from. For SourceDocument the
// document id and field are set; for SourceComputed, Inputs lists exactly the
// upstream node ids used in the arithmetic, in the order they were used, and
// Formula is a human-readable note of the operation.
type Source struct {
	Kind       SourceKind `json:"kind"`
	DocumentID string     `json:"document_id,omitempty"`
	Field      string     `json:"field,omitempty"`
	Inputs     []string   `json:"inputs,omitempty"`
	Formula    string     `json:"formula,omitempty"`
}

// TracedValue is the atomic output unit: an amount plus full provenance under
// a stable node id. Confidence is in [0,1]; a computed value's confidence is
// the minimum of its inputs' confidences.
type TracedValue struct {
	NodeID     string  `json:"node_id"`
	Amount     Cents   `json:"amount"`
	Source     Source  `json:"source"`
	Confidence float64 `json:"confidence"`
}

// ComputeTrace is the explain tree reachable from one line item. Shared
// upstream nodes are duplicated per path rather than shared, so the tree is
// acyclic by construction and safe to traverse recursively.
type ComputeTrace struct {
	NodeID string         `json:"node_id"`
	Label  string         `json:"label"`
	Output TracedValue    `json:"output"`
	Inputs []ComputeTrace `json:"inputs"`
}

type traceNode struct {
	label string
	value TracedValue
}

// TraceGraph accumulates every traced value produced during one computation,
// in computation order, and answers explain-tree lookups. It is built by a
// single computation and read-only afterwards; it is not safe for concurrent
// mutation.
type TraceGraph struct {
	nodes map[string]traceNode
	order []string
}

// NewTraceGraph constructs an empty graph.
func NewTraceGraph() *TraceGraph {
	return &TraceGraph{nodes: make(map[string]traceNode)}
}

// Document registers a raw-input node read from a source document and returns
// its traced value. Registering a node id twice is a programming fault and
// panics, matching the fail-fast contract for configuration errors.
func (g *TraceGraph) Document(nodeID, label, documentID, field string, amount Cents, confidence float64) TracedValue {
	v := TracedValue{
		NodeID: nodeID,
		Amount: amount,
		Source: Source{
			Kind:       SourceDocument,
			DocumentID: documentID,
			Field:      field,
		},
		Confidence: DocumentConfidence(confidence),
	}
	g.put(nodeID, label, v)
	return v
}

// Computed registers a derived node. The inputs are the upstream traced values
// actually used in the arithmetic, in order; their node ids become the
// provenance inputs verbatim, keeping the explain graph truthful. Every input
// must already be registered (the graph never points forward in computation
// order); violations panic.
func (g *TraceGraph) Computed(nodeID, label, formula string, amount Cents, inputs ...TracedValue) TracedValue {
	ids := make([]string, 0, len(inputs))
	confidence := 1.0
	for _, in := range inputs {
		if _, ok := g.nodes[in.NodeID]; !ok {
			panic(fmt.Sprintf("trace: node %s references unregistered input %s", nodeID, in.NodeID))
		}
		ids = append(ids, in.NodeID)
		if in.Confidence < confidence {
			confidence = in.Confidence
		}
	}
	v := TracedValue{
		NodeID: nodeID,
		Amount: amount,
		Source: Source{
			Kind:    SourceComputed,
			Inputs:  ids,
			Formula: formula,
		},
		Confidence: confidence,
	}
	g.put(nodeID, label, v)
	return v
}

func (g *TraceGraph) put(nodeID, label string, v TracedValue) {
	if nodeID == "" {
		panic("trace: empty node id")
	}
	if _, ok := g.nodes[nodeID]; ok {
		panic(fmt.Sprintf("trace: node %s registered twice", nodeID))
	}
	g.nodes[nodeID] = traceNode{label: label, value: v}
	g.order = append(g.order, nodeID)
}

// Value returns the traced value registered under the node id.
func (g *TraceGraph) Value(nodeID string) (TracedValue, bool) {
	n, ok := g.nodes[nodeID]
	return n.value, ok
}

// Label returns the human-readable label registered under the node id.
func (g *TraceGraph) Label(nodeID string) (string, bool) {
	n, ok := g.nodes[nodeID]
	return n.label, ok
}

// NodeIDs returns every registered node id in computation order.
func (g *TraceGraph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len reports the number of registered nodes.
func (g *TraceGraph) Len() int {
	return len(g.order)
}

// Explain builds the full compute trace rooted at the node id by walking
// computed sources recursively. Shared upstream nodes are duplicated per path,
// never collapsed into a DAG, so consumers may recurse without cycle checks.
func (g *TraceGraph) Explain(nodeID string) (*ComputeTrace, error) {
	n, ok := g.nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("trace: unknown node %s", nodeID)
	}
	t := g.expand(nodeID, n)
	return &t, nil
}

func (g *TraceGraph) expand(nodeID string, n traceNode) ComputeTrace {
	t := ComputeTrace{NodeID: nodeID, Label: n.label, Output: n.value}
	if n.value.Source.Kind != SourceComputed {
		return t
	}
	for _, id := range n.value.Source.Inputs {
		child, ok := g.nodes[id]
		if !ok {
			// put() guarantees inputs exist; guard kept for zero-value graphs.
			continue
		}
		t.Inputs = append(t.Inputs, g.expand(id, child))
	}
	return t
}

// SortedNodeIDs returns registered node ids sorted lexically, for stable
// serialization of full-graph dumps.
func (g *TraceGraph) SortedNodeIDs() []string {
	out := g.NodeIDs()
	sort.Strings(out)
	return out
}
