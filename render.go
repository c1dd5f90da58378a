package xhtml2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// renderBackend abstracts the rendering engine's session lifecycle
// (launch, load, close) away from the pure decision logic.
type renderBackend interface {
	// Open loads the document at fileURL and blocks until it has finished
	// loading and settling. The caller owns the returned session and must
	// close it on every exit path.
	Open(ctx context.Context, fileURL string) (renderSession, error)
	Close() error
}

// renderSession is the narrow capability surface the pipeline consumes
// from a loaded document: a read-only geometry query and a PDF export.
type renderSession interface {
	// Geometry returns the document's full scrollable content box.
	Geometry(ctx context.Context) (ContentGeometry, error)

	// MarkerGeometry measures explicit page containers (.pf/.pc markers
	// emitted by common report generators). ok is false when the document
	// has no plausible page markers.
	MarkerGeometry(ctx context.Context) (g ContentGeometry, ok bool, err error)

	// ExportPDF renders the loaded document to PDF bytes using the given
	// layout decision.
	ExportPDF(ctx context.Context, d LayoutDecision, printBackground bool) ([]byte, error)

	Close() error
}

// Compile-time interface checks.
var (
	_ renderBackend = (*rodBackend)(nil)
	_ renderSession = (*rodSession)(nil)
)

// cssPixelsPerInch converts the pixel-based page box to the inch-based
// paper dimensions Chrome's print endpoint expects.
const cssPixelsPerInch = 96.0

// geometryJS reads the total laid-out content size. The viewport size is
// caller-configured and unrelated to the actual content extent, so the
// scroll box is the only dimension that is reliable across source tools.
const geometryJS = `() => {
	const doc = document.documentElement;
	const body = document.body;
	return {
		width: Math.max(doc ? doc.scrollWidth : 0, body ? body.scrollWidth : 0),
		height: Math.max(doc ? doc.scrollHeight : 0, body ? body.scrollHeight : 0),
	};
}`

// markerJS measures .pf/.pc page containers. Boxes smaller than a
// plausible printed page (400px on the short edge, 600px on the long one)
// are ignored. When pages disagree on orientation the majority wins, and
// the reported box is a representative of the majority.
const markerJS = `() => {
	const els = Array.from(document.querySelectorAll('.pf, .pc'));
	const boxes = els.map((el) => {
		const r = el.getBoundingClientRect();
		return { width: Math.round(r.width), height: Math.round(r.height) };
	}).filter((b) => Math.min(b.width, b.height) >= 400 && Math.max(b.width, b.height) >= 600);
	if (boxes.length === 0) {
		return { count: 0, width: 0, height: 0 };
	}
	const landscape = boxes.filter((b) => b.width > b.height).length;
	const wantLandscape = landscape > boxes.length - landscape;
	const pick = boxes.find((b) => (b.width > b.height) === wantLandscape) || boxes[0];
	return { count: boxes.length, width: pick.width, height: pick.height };
}`

// rodBackend implements renderBackend using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodBackend struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodBackend creates a rodBackend with the given timeout.
func newRodBackend(timeout time.Duration) *rodBackend {
	return &rodBackend{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (b *rodBackend) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = rod.New().ControlURL(u)
	if err := b.browser.Connect(); err != nil {
		b.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (b *rodBackend) Close() error {
	if b.browser != nil {
		err := b.browser.Close()
		b.browser = nil
		return err
	}
	return nil
}

// Open navigates to fileURL and waits for the page to finish loading and
// settling. The core must not probe geometry before the idle signal:
// reading a mid-layout document yields an inconsistent content box.
func (b *rodBackend) Open(ctx context.Context, fileURL string) (renderSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{URL: fileURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	// Honor context deadline if tighter than the configured timeout
	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			_ = page.Close()
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Network settling. Large reports lazily pull images and fonts after
	// the load event fires.
	if err := page.WaitIdle(timeout); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: waiting for idle: %v", ErrPageLoad, err)
	}

	return &rodSession{page: page}, nil
}

// rodSession wraps one loaded browser page.
type rodSession struct {
	page *rod.Page
}

// Geometry evaluates a read-only script against the rendered document and
// returns its content bounding box. Degenerate dimensions are rejected
// here so the layout engine never sees them.
func (s *rodSession) Geometry(ctx context.Context) (ContentGeometry, error) {
	if err := ctx.Err(); err != nil {
		return ContentGeometry{}, err
	}

	obj, err := s.page.Eval(geometryJS)
	if err != nil {
		return ContentGeometry{}, fmt.Errorf("%w: %v", ErrGeometryUnavailable, err)
	}

	g := ContentGeometry{
		Width:  obj.Value.Get("width").Int(),
		Height: obj.Value.Get("height").Int(),
	}
	if err := g.Validate(); err != nil {
		return ContentGeometry{}, err
	}
	return g, nil
}

// MarkerGeometry measures explicit page containers when present.
func (s *rodSession) MarkerGeometry(ctx context.Context) (ContentGeometry, bool, error) {
	if err := ctx.Err(); err != nil {
		return ContentGeometry{}, false, err
	}

	obj, err := s.page.Eval(markerJS)
	if err != nil {
		return ContentGeometry{}, false, fmt.Errorf("%w: %v", ErrGeometryUnavailable, err)
	}

	if obj.Value.Get("count").Int() == 0 {
		return ContentGeometry{}, false, nil
	}

	g := ContentGeometry{
		Width:  obj.Value.Get("width").Int(),
		Height: obj.Value.Get("height").Int(),
	}
	if err := g.Validate(); err != nil {
		return ContentGeometry{}, false, err
	}
	return g, true, nil
}

// ExportPDF prints the loaded document with the decided parameters.
func (s *rodSession) ExportPDF(ctx context.Context, d LayoutDecision, printBackground bool) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := s.page.PDF(buildPrintOptions(d, printBackground))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// Close releases the browser page.
func (s *rodSession) Close() error {
	return s.page.Close()
}

// buildPrintOptions maps a LayoutDecision to Chrome's print parameters.
// The page box is always handed over in portrait order; Chrome swaps the
// axes itself when the landscape flag is set.
func buildPrintOptions(d LayoutDecision, printBackground bool) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(float64(d.PageBox.Width) / cssPixelsPerInch),
		PaperHeight:       floatPtr(float64(d.PageBox.Height) / cssPixelsPerInch),
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
		Landscape:         d.Orientation == Landscape,
		Scale:             floatPtr(d.Scale),
		PrintBackground:   printBackground,
		PreferCSSPageSize: d.PreferCSSPageSize,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
