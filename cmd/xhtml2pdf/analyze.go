package main

import (
	"fmt"

	xhtml2pdf "github.com/alnah/go-xhtml2pdf"
	"github.com/alnah/go-xhtml2pdf/internal/yamlutil"
)

// runAnalyze inspects documents without launching a browser and prints a
// YAML report per file: detected page containers, declared dimensions,
// styling approach, and inline XBRL presence.
func runAnalyze(positionalArgs []string, flags *analyzeFlags, deps *Dependencies) error {
	if len(positionalArgs) == 0 {
		return ErrNoInput
	}

	// Accept files and directories alike, reusing convert's discovery.
	var paths []string
	for _, arg := range positionalArgs {
		files, err := discoverFiles(arg, "")
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		for _, f := range files {
			paths = append(paths, f.InputPath)
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no XHTML documents found")
	}

	var failed int
	for _, path := range paths {
		report, err := xhtml2pdf.AnalyzeFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v\n", path, err)
			continue
		}
		if err := printReport(path, report, deps); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed to analyze", failed)
	}
	return nil
}

// printReport writes one document's analysis as YAML.
func printReport(path string, report *xhtml2pdf.Report, deps *Dependencies) error {
	out, err := yamlutil.Marshal(map[string]*xhtml2pdf.Report{path: report})
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = deps.Stdout.Write(out)
	return err
}
