package xhtml2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// ErrGeometryUnavailable means the rendered document reported zero or
	// undefined dimensions (empty body, script failure). A conversion that
	// hits this error is aborted before any PDF export is attempted.
	ErrGeometryUnavailable = errors.New("content geometry unavailable")

	// ErrInvalidPageBox means a configured page box has a non-positive
	// dimension. Raised at configuration time, before any document is
	// processed.
	ErrInvalidPageBox = errors.New("invalid page box")

	ErrInvalidPolicy    = errors.New("invalid layout policy")
	ErrNoDocument       = errors.New("no document specified")
	ErrConflictingInput = errors.New("both Path and HTML specified")

	// Browser/rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Analyzer errors.
	ErrDocumentParse = errors.New("failed to parse document")
)
