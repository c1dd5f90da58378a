package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds target page box flags. A named size and a custom pixel
// box are mutually exclusive; the custom box wins when both are set.
type pageFlags struct {
	size   string
	width  int
	height int
}

// layoutFlags holds layout decision flags.
type layoutFlags struct {
	policy string
}

// renderFlags holds rendering flags.
type renderFlags struct {
	timeout       string
	noBackground  bool
	stripDataURIs bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	page    pageFlags
	layout  layoutFlags
	render  renderFlags
}

// analyzeFlags holds all flags for the analyze command.
type analyzeFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page box flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.IntVar(&f.width, "page-width", 0, "custom page width in px at 96 DPI")
	fs.IntVar(&f.height, "page-height", 0, "custom page height in px at 96 DPI")
}

// addLayoutFlags adds layout policy flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVar(&f.policy, "policy", "", "layout policy: orientation, fit-width")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.noBackground, "no-background", false, "skip background graphics in the PDF")
	fs.BoolVar(&f.stripDataURIs, "strip-base64", false, "drop base64 image/font payloads before rendering")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addLayoutFlags(fs, &f.layout)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseAnalyzeFlags parses analyze command flags and returns positional args.
func parseAnalyzeFlags(args []string) (*analyzeFlags, []string, error) {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	f := &analyzeFlags{}

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printAnalyzeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
