package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args[1:], DefaultDeps()))
}

// runMain dispatches commands and returns the process exit code.
// Separated from main for testability.
func runMain(args []string, deps *Dependencies) int {
	if len(args) == 0 {
		printUsage(deps.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "convert":
		return runConvertCmd(args[1:], deps)
	case "analyze":
		return runAnalyzeCmd(args[1:], deps)
	case "version", "--version":
		fmt.Fprintf(deps.Stdout, "xhtml2pdf %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(args[1:], deps)
		return ExitSuccess
	}

	// Convenience: a bare document or directory path implies convert.
	if looksLikeInput(args[0]) {
		return runConvertCmd(args, deps)
	}

	fmt.Fprintf(deps.Stderr, "unknown command %q\n\n", args[0])
	printUsage(deps.Stderr)
	return ExitUsage
}

// runConvertCmd parses flags and runs the convert command.
func runConvertCmd(args []string, deps *Dependencies) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return ExitUsage
	}

	setupMaxprocs(flags.common.verbose, deps)
	warnUnknownEnvVars(deps)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, deps); err != nil {
		fmt.Fprintf(deps.Stderr, "%v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runAnalyzeCmd parses flags and runs the analyze command.
func runAnalyzeCmd(args []string, deps *Dependencies) int {
	flags, positional, err := parseAnalyzeFlags(args)
	if err != nil {
		return ExitUsage
	}

	if err := runAnalyze(positional, flags, deps); err != nil {
		fmt.Fprintln(deps.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setupMaxprocs aligns GOMAXPROCS with container CPU quotas.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setupMaxprocs(verbose bool, deps *Dependencies) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(deps.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}
}

// looksLikeInput reports whether arg is plausibly a document path rather
// than a mistyped command.
func looksLikeInput(arg string) bool {
	if hasDocumentExtension(arg) {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}
