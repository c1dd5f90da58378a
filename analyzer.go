package xhtml2pdf

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-xhtml2pdf/internal/cssunit"
)

// Static pre-flight analysis of an XHTML report: detect pseudo-page
// containers, their declared dimensions, the styling approach, and inline
// XBRL presence, all without launching a browser. Declared dimensions are
// a hint, not a substitute for rendered geometry (authoring tools lie),
// but the report is cheap and useful for triaging problem documents
// before conversion.

// PageType classifies how a page container was detected.
type PageType string

// Page container marker types.
const (
	PageTypePF     PageType = "pf"     // .pf page formatting element
	PageTypePC     PageType = "pc"     // .pc page container
	PageTypeCustom PageType = "custom" // other page indicators
)

// Document styling approaches.
const (
	StyleCSS    = "css"
	StyleInline = "inline"
	StyleMixed  = "mixed"
)

// PageInfo describes one detected page container.
type PageInfo struct {
	Number      int         `yaml:"number"`
	Width       float64     `yaml:"width"`  // px at 96 DPI
	Height      float64     `yaml:"height"` // px at 96 DPI
	Orientation Orientation `yaml:"orientation"`
	Type        PageType    `yaml:"type"`
}

// Report is the result of static document analysis.
type Report struct {
	Pages       []PageInfo  `yaml:"pages"`
	StyleType   string      `yaml:"styleType"` // css, inline, or mixed ("" = none found)
	HasXBRL     bool        `yaml:"hasXBRL"`
	Orientation Orientation `yaml:"orientation"` // majority vote over pages
}

// Class and id patterns commonly emitted by report generators.
var (
	explicitPageClasses = []string{"pf", "pc"}
	customPageClasses   = []string{"pageView", "page", "page-container", "pdf-page"}
	pageIDPattern       = regexp.MustCompile(`^(?:pf|page|pg)\d+$`)
	styleBlockPattern   = regexp.MustCompile(`([^{}]+)\{([^{}]+)\}`)
)

// inlineStyleAttrsForMixed is the threshold above which a document with
// both stylesheets and inline styles counts as mixed.
const inlineStyleAttrsForMixed = 10

// AnalyzeFile parses and analyzes the XHTML document at path.
func AnalyzeFile(path string) (*Report, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-provided document path
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Analyze(f)
}

// Analyze parses and analyzes an XHTML document.
func Analyze(r io.Reader) (*Report, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}

	a := &analyzer{classRules: map[string]map[string]string{}}
	a.collectStyles(root)

	report := &Report{
		StyleType: a.inferStyleType(),
		HasXBRL:   detectXBRL(root),
	}

	// Explicit .pf/.pc markers first; fall back to looser indicators only
	// when a document has none at all.
	report.Pages = a.findPages(root, explicitMarker)
	if len(report.Pages) == 0 {
		report.Pages = a.findPages(root, customMarker)
	}
	report.Orientation = majorityOrientation(report.Pages)

	return report, nil
}

// analyzer accumulates per-document parse state.
type analyzer struct {
	classRules    map[string]map[string]string // class name -> css rules
	inlineStyles  int
	hasStylesheet bool
}

// collectStyles walks the tree once, gathering <style> rules and styling
// statistics.
func (a *analyzer) collectStyles(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "style":
			a.parseStyleBlock(textContent(n))
			a.hasStylesheet = true
		case "link":
			if strings.Contains(strings.ToLower(attr(n, "rel")), "stylesheet") {
				a.hasStylesheet = true
			}
		}
		if attr(n, "style") != "" {
			a.inlineStyles++
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		a.collectStyles(c)
	}
}

// parseStyleBlock extracts class-selector rules like
// ".pf { width: 210mm; height: 297mm }".
func (a *analyzer) parseStyleBlock(css string) {
	for _, m := range styleBlockPattern.FindAllStringSubmatch(css, -1) {
		rules := parseRules(m[2])
		if len(rules) == 0 {
			continue
		}
		for _, sel := range strings.Split(m[1], ",") {
			sel = strings.TrimSpace(sel)
			if !strings.HasPrefix(sel, ".") {
				continue
			}
			name := strings.TrimPrefix(sel, ".")
			if a.classRules[name] == nil {
				a.classRules[name] = map[string]string{}
			}
			for k, v := range rules {
				a.classRules[name][k] = v
			}
		}
	}
}

// inferStyleType classifies the document's styling approach.
func (a *analyzer) inferStyleType() string {
	manyInline := a.inlineStyles > inlineStyleAttrsForMixed
	switch {
	case manyInline && a.hasStylesheet:
		return StyleMixed
	case manyInline:
		return StyleInline
	case a.hasStylesheet:
		return StyleCSS
	}
	return ""
}

// markerFunc reports whether a node is a page container and of what type.
type markerFunc func(n *html.Node) (PageType, bool)

func explicitMarker(n *html.Node) (PageType, bool) {
	for _, c := range classes(n) {
		switch c {
		case "pf":
			return PageTypePF, true
		case "pc":
			return PageTypePC, true
		}
	}
	return "", false
}

func customMarker(n *html.Node) (PageType, bool) {
	for _, c := range classes(n) {
		for _, want := range customPageClasses {
			if c == want {
				return PageTypeCustom, true
			}
		}
	}
	if pageIDPattern.MatchString(strings.ToLower(attr(n, "id"))) {
		return PageTypeCustom, true
	}
	return "", false
}

// findPages collects page containers matching the marker. Matched
// subtrees are not descended into, so nested containers are not counted
// twice.
func (a *analyzer) findPages(root *html.Node, marker markerFunc) []PageInfo {
	var pages []PageInfo

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			if pt, ok := marker(n); ok {
				if w, h, ok := a.dimensions(n); ok {
					pages = append(pages, PageInfo{
						Number:      len(pages) + 1,
						Width:       w,
						Height:      h,
						Orientation: pageOrientation(w, h),
						Type:        pt,
					})
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return pages
}

// dimensions resolves a container's width and height by merging class
// rules from <style> blocks with its inline style (inline wins), then
// converting to pixels. Containers missing either dimension are skipped.
func (a *analyzer) dimensions(n *html.Node) (w, h float64, ok bool) {
	combined := map[string]string{}
	for _, c := range classes(n) {
		for k, v := range a.classRules[c] {
			combined[k] = v
		}
	}
	for k, v := range parseRules(attr(n, "style")) {
		combined[k] = v
	}

	w, wErr := cssunit.ToPixels(combined["width"])
	h, hErr := cssunit.ToPixels(combined["height"])
	if wErr != nil || hErr != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// pageOrientation uses >= so that square containers count as landscape,
// matching how report generators emit rotated pages with equal box sides.
func pageOrientation(w, h float64) Orientation {
	if w >= h {
		return Landscape
	}
	return Portrait
}

// majorityOrientation votes across detected pages; ties and empty page
// lists resolve to portrait.
func majorityOrientation(pages []PageInfo) Orientation {
	var landscape int
	for _, p := range pages {
		if p.Orientation == Landscape {
			landscape++
		}
	}
	if landscape > len(pages)-landscape {
		return Landscape
	}
	return Portrait
}

// detectXBRL reports whether the document declares an XBRL namespace,
// falling back to a tag-name scan for documents that omit the
// declaration.
func detectXBRL(root *html.Node) bool {
	var found bool
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if strings.HasPrefix(a.Key, "xmlns") && strings.Contains(strings.ToLower(a.Val), "xbrl") {
					found = true
					return
				}
			}
			if strings.Contains(strings.ToLower(n.Data), "xbrl") {
				found = true
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// parseRules converts "width:210mm; height:297mm" into a map.
func parseRules(style string) map[string]string {
	rules := map[string]string{}
	for _, rule := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(rule, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop != "" && val != "" {
			rules[prop] = val
		}
	}
	return rules
}

// textContent concatenates the text nodes under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// classes returns the node's class list.
func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
