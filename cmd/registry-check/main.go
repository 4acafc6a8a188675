// Command registry-check builds the default tax-year registry and verifies
// that every registered year carries valid federal constants and a complete
// state-module set. It prints the registered years and state codes, and
// exits nonzero if the registry cannot be constructed or a year fails
// validation. Intended for CI and release gating.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"taxcore/internal/core"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("registry-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		quiet = fs.Bool("quiet", false, "suppress the per-year report; only report failures")
		year  = fs.Int("year", 0, "check a single tax year instead of all registered years")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	reg, err := core.NewDefaultRegistry()
	if err != nil {
		fmt.Fprintf(stderr, "registry-check: %v\n", err)
		return 1
	}

	years := reg.Years()
	if *year != 0 {
		years = []int{*year}
	}

	failures := 0
	for _, y := range years {
		mod, err := reg.Lookup(y)
		if err != nil {
			fmt.Fprintf(stderr, "registry-check: %v\n", err)
			failures++
			continue
		}
		if err := checkYear(mod); err != nil {
			fmt.Fprintf(stderr, "registry-check: tax year %d: %v\n", y, err)
			failures++
			continue
		}
		if !*quiet {
			fmt.Fprintf(stdout, "tax year %d: ok (states: %s)\n", y, strings.Join(mod.States.Codes(), ", "))
		}
	}
	if failures > 0 {
		fmt.Fprintf(stderr, "registry-check: %d of %d year(s) failed\n", failures, len(years))
		return 1
	}
	return 0
}

// checkYear validates one year module beyond what Register already enforces:
// constants must validate, the year fields must agree, and every state module
// must be resolvable by its own code.
func checkYear(mod core.YearModule) error {
	if err := mod.Constants.Validate(); err != nil {
		return err
	}
	if mod.Constants.Year != mod.Year {
		return fmt.Errorf("constants are for tax year %d", mod.Constants.Year)
	}
	if mod.States == nil {
		return fmt.Errorf("no state registry")
	}
	codes := mod.States.Codes()
	if len(codes) == 0 {
		return fmt.Errorf("state registry is empty")
	}
	for _, code := range codes {
		sm, err := mod.States.Lookup(code)
		if err != nil {
			return err
		}
		if sm.Code() != code {
			return fmt.Errorf("state %q registered under code %q", sm.Code(), code)
		}
		if sm.Name() == "" {
			return fmt.Errorf("state %s has no name", code)
		}
	}
	return nil
}
