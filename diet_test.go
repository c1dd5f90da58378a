package xhtml2pdf

import (
	"strings"
	"testing"
)

const fakePNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAAB"
const fakeWoff = "data:font/woff2;base64,d09GMgABAAAAAAQ4AAoAAAAACFg="

// ---------------------------------------------------------------------------
// TestStripDataURIs - Base64 payload removal
// ---------------------------------------------------------------------------

func TestStripDataURIs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantGone    []string
		wantPresent []string
	}{
		{
			name:        "img src payload replaced with pixel",
			input:       `<img src="` + fakePNG + `" width="100"/>`,
			wantGone:    []string{"iVBORw0KGgo"},
			wantPresent: []string{transparentPixel, `width="100"`},
		},
		{
			name:        "css background url dropped",
			input:       `<div style="background-image: url('` + fakePNG + `'); color: red">x</div>`,
			wantGone:    []string{"iVBORw0KGgo", "background-image"},
			wantPresent: []string{"color: red", ">x</div>"},
		},
		{
			name:        "font-face block dropped",
			input:       `<style>@font-face { font-family: Corp; src: url(` + fakeWoff + `); } p { margin: 0 }</style>`,
			wantGone:    []string{"d09GMgAB", "@font-face"},
			wantPresent: []string{"p { margin: 0 }"},
		},
		{
			name:        "lazy-load data attribute dropped",
			input:       `<img data-src="` + fakePNG + `" alt="chart"/>`,
			wantGone:    []string{"iVBORw0KGgo"},
			wantPresent: []string{`alt="chart"`},
		},
		{
			name:        "markup without payloads untouched",
			input:       `<html><body><table><tr><td>1,234.56</td></tr></table></body></html>`,
			wantPresent: []string{"<table>", "1,234.56"},
		},
		{
			name:        "external image src untouched",
			input:       `<img src="figures/chart.png"/>`,
			wantPresent: []string{`src="figures/chart.png"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := StripDataURIs(tt.input)

			for _, s := range tt.wantGone {
				if strings.Contains(got, s) {
					t.Errorf("StripDataURIs() still contains %q:\n%s", s, got)
				}
			}
			for _, s := range tt.wantPresent {
				if !strings.Contains(got, s) {
					t.Errorf("StripDataURIs() lost %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestStripDataURIs_Idempotent(t *testing.T) {
	t.Parallel()

	input := `<img src="` + fakePNG + `"/><style>@font-face { src: url(` + fakeWoff + `) }</style>`

	once := StripDataURIs(input)
	twice := StripDataURIs(once)
	if once != twice {
		t.Errorf("StripDataURIs is not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

// ---------------------------------------------------------------------------
// TestStripBackgroundDataURIs - Backgrounds only
// ---------------------------------------------------------------------------

func TestStripBackgroundDataURIs(t *testing.T) {
	t.Parallel()

	input := `<div style="background: url(` + fakePNG + `);"><img src="` + fakePNG + `"/></div>`

	got := StripBackgroundDataURIs(input)

	if strings.Contains(got, "background: url") {
		t.Errorf("background payload survived:\n%s", got)
	}
	if !strings.Contains(got, `<img src="`+fakePNG+`"/>`) {
		t.Errorf("content image was stripped:\n%s", got)
	}
}
