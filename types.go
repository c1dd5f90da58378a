package xhtml2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Orientation of a printed page.
type Orientation string

// Orientation constants.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Policy selects how the layout decision is computed.
type Policy string

// Layout policy constants.
const (
	// PolicyOrientation decides only the page orientation and lets the
	// document's own CSS @page size win over the configured page box.
	PolicyOrientation Policy = "orientation"

	// PolicyFitWidth keeps portrait orientation and scales content down
	// to fit the page width, leaving vertical pagination to the browser.
	PolicyFitWidth Policy = "fit-width"
)

// isValidPolicy checks if p is a known layout policy (case-insensitive).
func isValidPolicy(p Policy) bool {
	switch Policy(strings.ToLower(string(p))) {
	case PolicyOrientation, PolicyFitWidth:
		return true
	}
	return false
}

// Named page sizes.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Standard page boxes in CSS pixels at 96 DPI.
var (
	// A4: 210x297mm. Width 794px, ratio 1.414.
	PageBoxA4 = PageBox{Width: 794, Height: 1123}

	// US Letter: 8.5x11in.
	PageBoxLetter = PageBox{Width: 816, Height: 1056}

	// US Legal: 8.5x14in.
	PageBoxLegal = PageBox{Width: 816, Height: 1344}
)

// PageBox is a target page size in CSS pixels at 96 DPI.
// It is constant configuration, never derived per document.
type PageBox struct {
	Width  int
	Height int
}

// DefaultPageBox returns the default target page size (A4 at 96 DPI).
func DefaultPageBox() PageBox {
	return PageBoxA4
}

// Validate checks that both dimensions are positive.
func (b PageBox) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d (both dimensions must be positive)", ErrInvalidPageBox, b.Width, b.Height)
	}
	return nil
}

// ParsePageSize resolves a named page size to its pixel box
// (case-insensitive).
func ParsePageSize(name string) (PageBox, error) {
	switch strings.ToLower(name) {
	case PageSizeA4:
		return PageBoxA4, nil
	case PageSizeLetter:
		return PageBoxLetter, nil
	case PageSizeLegal:
		return PageBoxLegal, nil
	}
	return PageBox{}, fmt.Errorf("%w: unknown page size %q", ErrInvalidPageBox, name)
}

// ContentGeometry is the total rendered extent of a document's content in
// CSS pixels, independent of any viewport size. Produced once per
// document, after the page has finished loading and settling. Immutable.
type ContentGeometry struct {
	Width  int
	Height int
}

// Validate rejects degenerate geometry. A zero or negative dimension
// signals a probe failure, not a valid measurement.
func (g ContentGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: probed %dx%d", ErrGeometryUnavailable, g.Width, g.Height)
	}
	return nil
}

// LayoutDecision holds the parameters handed to the PDF export: target
// page box, orientation, content scale, and whether the document's own
// CSS @page size takes precedence over the page box.
//
// Invariants: Scale is in (0, 1] and ContentWidth*Scale never exceeds
// PageBox.Width. Content is never upscaled.
type LayoutDecision struct {
	PageBox           PageBox
	Orientation       Orientation
	Scale             float64
	PreferCSSPageSize bool
}

// Input contains conversion parameters for a single document.
type Input struct {
	Path string // path to the XHTML document (required unless HTML is set)
	HTML string // inline document content (alternative to Path)

	Policy  Policy   // layout policy ("" = service default)
	PageBox *PageBox // target page box (nil = service default)

	NoBackground  bool // skip background graphics in the PDF
	StripDataURIs bool // drop base64 image/font payloads before rendering
}

// Result holds the outcome of a conversion.
type Result struct {
	PDF      []byte
	Geometry ContentGeometry // probed content bounding box
	Decision LayoutDecision  // parameters used for the export
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	policy  Policy
	pageBox PageBox
}

// defaultTimeout is used when no timeout is specified. Large financial
// reports with embedded images routinely take tens of seconds to settle.
const defaultTimeout = 2 * time.Minute

// WithTimeout sets the per-document rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("xhtml2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithPolicy sets the default layout policy. Validated by New.
func WithPolicy(p Policy) Option {
	return func(s *Service) {
		s.cfg.policy = p
	}
}

// WithPageBox sets the default target page box. Validated by New.
func WithPageBox(b PageBox) Option {
	return func(s *Service) {
		s.cfg.pageBox = b
	}
}
