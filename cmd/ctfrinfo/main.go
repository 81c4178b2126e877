// Command ctfrinfo describes the available combination methods.
//
// Usage:
//
//	ctfrinfo [flags] [method ...]
//
// Without arguments it prints an overview of all methods. With method keys
// it prints their parameter tables.
//
// Examples:
//
//	ctfrinfo
//	ctfrinfo -list
//	ctfrinfo fls sls_h
//	ctfrinfo -cite doi lt
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"github.com/cwbudde/algo-ctfr/combine"
)

const ellipsis = "…"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ctfrinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	list := fs.Bool("list", false, "list method keys")
	cite := fs.String("cite", "", "print citations: default, doi or citation")
	width := fs.Int("width", 60, "truncate long text columns to this many cells (0 = no limit)")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: ctfrinfo [flags] [method ...]\n\n")
		_, _ = fmt.Fprintf(stderr, "Describes the combination methods of ctfr.\n")
		_, _ = fmt.Fprintf(stderr, "Without arguments, prints an overview of all methods.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(stderr, "\nExamples:\n")
		_, _ = fmt.Fprintf(stderr, "  ctfrinfo fls sls_h\n")
		_, _ = fmt.Fprintf(stderr, "  ctfrinfo -cite doi lt\n")
		_, _ = fmt.Fprintf(stderr, "  ctfrinfo -list\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	reg := combine.DefaultRegistry()

	if *list {
		return printList(stdout, stderr, reg)
	}

	methods, ok := resolveMethods(stderr, reg, fs.Args())
	if len(methods) == 0 {
		_, _ = fmt.Fprintf(stderr, "error: no matching methods\n")
		return 1
	}

	if *cite != "" {
		mode, err := parseCitationMode(*cite)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 2
		}
		if err := printCitations(stdout, stderr, reg, methods, mode); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return exitCode(ok)
	}

	var err error
	if len(fs.Args()) == 0 {
		err = printOverview(stdout, reg, methods, *width)
	} else {
		err = printParameters(stdout, reg, methods, *width)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: failed to write output: %v\n", err)
		return 1
	}
	return exitCode(ok)
}

func exitCode(ok bool) int {
	if ok {
		return 0
	}
	return 1
}

func printList(stdout, stderr io.Writer, reg *combine.Registry) int {
	for _, m := range reg.Methods() {
		if _, err := fmt.Fprintln(stdout, m); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: failed to write output: %v\n", err)
			return 1
		}
	}
	return 0
}

// resolveMethods maps keys to methods. Unknown keys are reported and
// skipped; ok is false when any key was unknown.
func resolveMethods(stderr io.Writer, reg *combine.Registry, keys []string) ([]combine.Method, bool) {
	if len(keys) == 0 {
		return reg.Methods(), true
	}

	ok := true
	var out []combine.Method
	for _, key := range keys {
		m, err := combine.ParseMethod(strings.ToLower(strings.TrimSpace(key)))
		if err == nil {
			_, err = reg.Lookup(m)
		}
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "warning: unknown method %q (use -list to see available)\n", key)
			ok = false
			continue
		}
		out = append(out, m)
	}
	return out, ok
}

func parseCitationMode(s string) (combine.CitationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default":
		return combine.CiteDefault, nil
	case "doi":
		return combine.CiteDOI, nil
	case "citation":
		return combine.CiteCitation, nil
	default:
		return 0, fmt.Errorf("%w: %q", combine.ErrInvalidCitationMode, s)
	}
}

func printCitations(stdout, stderr io.Writer, reg *combine.Registry, methods []combine.Method, mode combine.CitationMode) error {
	for _, m := range methods {
		text, warnings, err := reg.Cite(m, mode)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			_, _ = fmt.Fprintf(stderr, "warning: %s\n", w)
		}
		if _, err := fmt.Fprintf(stdout, "%s: %s\n", m, text); err != nil {
			return err
		}
	}
	return nil
}

func printOverview(stdout io.Writer, reg *combine.Registry, methods []combine.Method, width int) error {
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Key\tName\tParameters\tReference\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "---\t----\t----------\t---------\n"); err != nil {
		return err
	}

	for _, m := range methods {
		e, err := reg.Lookup(m)
		if err != nil {
			return err
		}

		names := make([]string, len(e.Parameters))
		for i, p := range e.Parameters {
			names[i] = p.Name
		}
		params := strings.Join(names, ", ")
		if params == "" {
			params = "-"
		}

		ref, _, err := reg.Cite(m, combine.CiteDefault)
		if err != nil {
			ref = "-"
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			m,
			cell(e.Name),
			cell(params),
			cell(truncate(ref, width)),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printParameters(stdout io.Writer, reg *combine.Registry, methods []combine.Method, width int) error {
	for i, m := range methods {
		e, err := reg.Lookup(m)
		if err != nil {
			return err
		}

		if i > 0 {
			if _, err := fmt.Fprintln(stdout); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(stdout, "%s (%s)\n", e.Name, m); err != nil {
			return err
		}
		if len(e.Parameters) == 0 {
			if _, err := fmt.Fprintln(stdout, "  no parameters"); err != nil {
				return err
			}
			continue
		}

		tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintf(tw, "  Parameter\tType\tDefault\tDescription\n"); err != nil {
			return err
		}
		for _, p := range e.Parameters {
			if _, err := fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				p.Name, p.TypeAndInfo, p.Default, cell(truncate(p.Description, width))); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// cell pads s so that tabwriter, which counts runes, aligns columns holding
// wide characters.
func cell(s string) string {
	if extra := runewidth.StringWidth(s) - len([]rune(s)); extra > 0 {
		return s + strings.Repeat(" ", extra)
	}
	return s
}
