// Command taxreturn-compute reads a tax return JSON file, computes the
// federal and state results, and writes the result JSON to stdout. With
// -explain it prints the compute trace for one node id instead; with
// -findings it prints only the validation findings; with -formfill it
// prints the PDF form field projection for an external filler.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"taxcore/internal/core"
	"taxcore/internal/formfill"
	"taxcore/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("taxreturn-compute", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		input    = fs.String("in", "", "path to the return JSON file (required)")
		explain  = fs.String("explain", "", "print the compute trace for this node id")
		findings = fs.Bool("findings", false, "print only validation findings")
		formFill = fs.Bool("formfill", false, "print the form field projection instead of the result")
		save     = fs.String("save", "", "persist the return under this id using the configured store")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *input == "" {
		fmt.Fprintln(stderr, "taxreturn-compute: -in is required")
		fs.Usage()
		return 2
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(stderr, "taxreturn-compute: %v\n", err)
		return 1
	}
	var ret domain.TaxReturn
	if err := json.Unmarshal(raw, &ret); err != nil {
		fmt.Fprintf(stderr, "taxreturn-compute: decode return: %v\n", err)
		return 1
	}

	engine, err := core.NewDefaultEngine()
	if err != nil {
		fmt.Fprintf(stderr, "taxreturn-compute: %v\n", err)
		return 1
	}

	opts := []core.ServiceOption{core.WithMetricsRecorder(core.NewExpvarMetricsRecorder(""))}
	if *save != "" {
		store, err := core.OpenReturnStore()
		if err != nil {
			fmt.Fprintf(stderr, "taxreturn-compute: open store: %v\n", err)
			return 1
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, core.WithReturnStore(store))
	}
	svc := core.NewService(engine, opts...)
	ctx := context.Background()

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")

	if *explain != "" {
		trace, err := svc.Explain(ctx, &ret, *explain)
		if err != nil {
			fmt.Fprintf(stderr, "taxreturn-compute: %v\n", err)
			return 1
		}
		if err := enc.Encode(trace); err != nil {
			fmt.Fprintf(stderr, "taxreturn-compute: %v\n", err)
			return 1
		}
		return 0
	}

	result, err := svc.ComputeReturn(ctx, &ret)
	if err != nil {
		fmt.Fprintf(stderr, "taxreturn-compute: %v\n", err)
		return 1
	}

	if *save != "" {
		if _, err := svc.SaveReturn(ctx, *save, &ret); err != nil {
			fmt.Fprintf(stderr, "taxreturn-compute: save: %v\n", err)
			return 1
		}
	}

	if *formFill {
		if err := enc.Encode(formfill.Return(result)); err != nil {
			fmt.Fprintf(stderr, "taxreturn-compute: %v\n", err)
			return 1
		}
		return 0
	}
	if *findings {
		if err := enc.Encode(result.Findings); err != nil {
			fmt.Fprintf(stderr, "taxreturn-compute: %v\n", err)
			return 1
		}
		return 0
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "taxreturn-compute: %v\n", err)
		return 1
	}
	return 0
}
