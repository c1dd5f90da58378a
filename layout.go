package xhtml2pdf

import (
	"fmt"
	"strings"
)

// LayoutEngine computes a LayoutDecision from probed content geometry and
// a target page box. Implementations are pure: identical inputs always
// yield identical decisions, and no implementation fails at runtime given
// valid, non-degenerate geometry. Degenerate geometry must be rejected
// upstream by the geometry probe.
type LayoutEngine interface {
	Decide(g ContentGeometry, box PageBox) LayoutDecision
}

// Compile-time interface checks.
var (
	_ LayoutEngine = orientationEngine{}
	_ LayoutEngine = fitWidthEngine{}
)

// NewLayoutEngine returns the engine for the given policy
// (case-insensitive). An empty policy selects PolicyOrientation.
func NewLayoutEngine(p Policy) (LayoutEngine, error) {
	switch Policy(strings.ToLower(string(p))) {
	case "", PolicyOrientation:
		return orientationEngine{}, nil
	case PolicyFitWidth:
		return fitWidthEngine{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, p)
}

// detectOrientation returns Landscape iff the content is strictly wider
// than tall. A square tie resolves to Portrait.
func detectOrientation(width, height int) Orientation {
	if width > height {
		return Landscape
	}
	return Portrait
}

// orientationEngine decides orientation only. The page box is passed
// through unchanged, scale stays 1.0, and the document's embedded CSS
// @page size wins over the box. This handles the common case where
// authoring tools embed correct page dimensions but inconsistent
// orientation metadata.
type orientationEngine struct{}

func (orientationEngine) Decide(g ContentGeometry, box PageBox) LayoutDecision {
	return LayoutDecision{
		PageBox:           box,
		Orientation:       detectOrientation(g.Width, g.Height),
		Scale:             1.0,
		PreferCSSPageSize: true,
	}
}

// fitWidthEngine fixes portrait orientation and scales content down so it
// fits the page width exactly. Content taller than one page relies on the
// browser's native pagination; every page shares the same box and scale.
// Content narrower than the page is never enlarged.
type fitWidthEngine struct{}

func (fitWidthEngine) Decide(g ContentGeometry, box PageBox) LayoutDecision {
	scale := 1.0
	if g.Width > box.Width {
		scale = float64(box.Width) / float64(g.Width)
	}
	return LayoutDecision{
		PageBox:           box,
		Orientation:       Portrait,
		Scale:             scale,
		PreferCSSPageSize: false,
	}
}
