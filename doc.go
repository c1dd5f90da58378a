// Package xhtml2pdf converts XHTML financial reports to print-ready PDF
// documents using headless Chrome.
//
// Reports produced by different authoring tools share no reliable markup
// conventions; the only trustworthy signal is the rendered geometry of the
// fully loaded document. The package therefore loads the document in a
// browser, probes its content bounding box, computes a layout decision
// (page box, orientation, scale), and hands that decision to Chrome's PDF
// export.
//
// # Quick Start
//
// Create a service, convert a document, and close when done:
//
//	svc, err := xhtml2pdf.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Convert(ctx, xhtml2pdf.Input{
//	    Path: "report.xhtml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", result.PDF, 0644)
//
// The result also carries the probed ContentGeometry and the
// LayoutDecision that produced the PDF, which is useful for logging and
// for verifying layout behavior on problem documents.
//
// # Conversion Pipeline
//
//  1. Load the document in headless Chrome (go-rod) and wait for it to
//     settle.
//  2. Probe the rendered content bounding box (scroll width/height).
//  3. Compute a LayoutDecision from the geometry and the configured page
//     box.
//  4. Export the PDF with the decided parameters.
//
// # Layout Policies
//
// Two policies are available, selectable per conversion or via WithPolicy:
//
//   - PolicyOrientation (default): decide only the page orientation
//     (landscape when the content is wider than tall) and let the
//     document's own CSS @page size take precedence. Suits reports that
//     embed correct page dimensions but inconsistent orientation.
//   - PolicyFitWidth: keep portrait orientation and scale the content
//     down so it fits the page width exactly, relying on Chrome's native
//     pagination for the vertical dimension. Suits documents with wildly
//     inconsistent absolute pixel sizes.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := xhtml2pdf.New(
//	    xhtml2pdf.WithTimeout(2 * time.Minute),
//	    xhtml2pdf.WithPolicy(xhtml2pdf.PolicyFitWidth),
//	    xhtml2pdf.WithPageBox(xhtml2pdf.PageBox{Width: 816, Height: 1056}),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ServicePool to manage multiple browser
// instances:
//
//	pool := xhtml2pdf.NewServicePool(4)
//	defer pool.Close()
//
//	svc, err := pool.Acquire()
//	defer pool.Release(svc)
//	result, err := svc.Convert(ctx, input)
//
// Each conversion is independent: no state is shared between documents,
// and a failed document never affects its siblings.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). For containers and CI environments, set
// ROD_NO_SANDBOX=1 to disable the Chrome sandbox. Use ROD_BROWSER_BIN to
// specify a custom Chrome binary.
package xhtml2pdf
