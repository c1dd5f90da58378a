package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xhtml2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert XHTML reports to print-ready PDF")
	fmt.Fprintln(w, "  analyze    Inspect documents without rendering (page markers, XBRL)")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'xhtml2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xhtml2pdf convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert XHTML reports to print-ready PDF. The page geometry is probed")
	fmt.Fprintln(w, "in a headless browser and each document gets its own layout decision.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal (default: a4)")
	fmt.Fprintln(w, "      --page-width <n>      Custom page width in px at 96 DPI")
	fmt.Fprintln(w, "      --page-height <n>     Custom page height in px at 96 DPI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --policy <s>          Layout policy: orientation, fit-width")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --no-background       Skip background graphics in the PDF")
	fmt.Fprintln(w, "      --strip-base64        Drop base64 image/font payloads before rendering")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show layout decisions and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  XHTML2PDF_CONFIG, XHTML2PDF_INPUT_DIR, XHTML2PDF_OUTPUT_DIR,")
	fmt.Fprintln(w, "  XHTML2PDF_PAGE_SIZE, XHTML2PDF_POLICY, XHTML2PDF_TIMEOUT,")
	fmt.Fprintln(w, "  XHTML2PDF_WORKERS, XHTML2PDF_STRIP_BASE64")
}

// printAnalyzeUsage prints usage for the analyze command.
func printAnalyzeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xhtml2pdf analyze <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inspect documents statically, without a browser, and print a YAML")
	fmt.Fprintln(w, "report per file: detected page containers and their declared")
	fmt.Fprintln(w, "dimensions, dominant orientation, styling approach, and inline XBRL")
	fmt.Fprintln(w, "presence.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document files or directories")
}

// runHelp prints help for a specific command.
func runHelp(args []string, deps *Dependencies) {
	if len(args) == 0 {
		printUsage(deps.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(deps.Stdout)
	case "analyze":
		printAnalyzeUsage(deps.Stdout)
	case "version":
		fmt.Fprintln(deps.Stdout, "Usage: xhtml2pdf version")
	case "help":
		fmt.Fprintln(deps.Stdout, "Usage: xhtml2pdf help <command>")
	default:
		fmt.Fprintf(deps.Stdout, "Unknown command %q\n\n", args[0])
		printUsage(deps.Stdout)
	}
}
