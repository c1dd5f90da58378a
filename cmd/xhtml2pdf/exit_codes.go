package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	xhtml2pdf "github.com/alnah/go-xhtml2pdf"
	"github.com/alnah/go-xhtml2pdf/internal/config"
	"github.com/alnah/go-xhtml2pdf/internal/hints"
)

// Exit codes for the xhtml2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, xhtml2pdf.ErrBrowserConnect) ||
		errors.Is(err, xhtml2pdf.ErrPageCreate) ||
		errors.Is(err, xhtml2pdf.ErrPageLoad) ||
		errors.Is(err, xhtml2pdf.ErrPDFGeneration) ||
		errors.Is(err, xhtml2pdf.ErrGeometryUnavailable) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, xhtml2pdf.ErrInvalidPageBox) ||
		errors.Is(err, xhtml2pdf.ErrInvalidPolicy) ||
		errors.Is(err, xhtml2pdf.ErrNoDocument) ||
		errors.Is(err, xhtml2pdf.ErrConflictingInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint to append to the error message, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, xhtml2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, xhtml2pdf.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigCandidates())
	case errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	}
	return ""
}

// userConfigCandidates lists config paths worth suggesting to the user.
func userConfigCandidates() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "go-xhtml2pdf", "config.yaml")}
}
