package xhtml2pdf

import "regexp"

// Authoring tools routinely inline every image and font as a base64 data
// URI, which balloons some reports past what a browser will load in
// reasonable time. Stripping the payloads is lossy but keeps the layout
// geometry intact, which is all the conversion pipeline needs.

// dataURIPattern matches base64 data URIs for images and embedded fonts.
const dataURIPattern = `data:(?:image/[^;,\s)"']+|` +
	`application/(?:x-)?font-(?:woff2?|ttf|otf|eot)|` +
	`font/(?:woff2?|ttf|otf|eot)|` +
	`application/(?:x-)?(?:font-)?(?:truetype|opentype));base64,[a-zA-Z0-9+/=]+`

// transparentPixel keeps src attributes valid after their payloads are
// stripped; an empty src makes some Chrome versions re-request the page.
const transparentPixel = "data:image/gif;base64,R0lGODlhAQABAAAAACw="

var (
	cssURLRe      = regexp.MustCompile(`(?:background(?:-image)?\s*:\s*)?url\(["']?` + dataURIPattern + `["']?\)\s*;?`)
	fontFaceRe    = regexp.MustCompile(`@font-face\s*\{[^}]*` + dataURIPattern + `[^}]*\}`)
	attrRe        = regexp.MustCompile(`((?:src|srcset|poster|href|data-src)=["']?)` + dataURIPattern + `(["']?)`)
	dataAttrRe    = regexp.MustCompile(`data-[a-zA-Z0-9-]+=["']?` + dataURIPattern + `["']?`)
	backgroundCSS = regexp.MustCompile(`background(?:-image)?\s*:\s*url\(["']?` + dataURIPattern + `["']?\)\s*;?`)
)

// StripDataURIs removes base64 image and font payloads from the document:
// CSS url() references, @font-face blocks, media attributes, and data-*
// attributes. Attribute payloads are replaced with a transparent pixel so
// element boxes keep their styled dimensions.
func StripDataURIs(content string) string {
	content = fontFaceRe.ReplaceAllString(content, "")
	content = cssURLRe.ReplaceAllString(content, "")
	content = attrRe.ReplaceAllString(content, "${1}"+transparentPixel+"${2}")
	content = dataAttrRe.ReplaceAllString(content, "")
	return content
}

// StripBackgroundDataURIs removes only base64 background-image payloads,
// preserving inline content images and fonts.
func StripBackgroundDataURIs(content string) string {
	return backgroundCSS.ReplaceAllString(content, "")
}
