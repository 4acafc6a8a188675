// Package plugins groups the concrete state return modules. Each state lives
// in its own package, implements the stateapi.Module contract against the
// federal result, and registers per-year parameters through its NewForYear
// constructor; the engine's year registry wires them at process start.
package plugins
