package xhtml2pdf

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuildPrintOptions - LayoutDecision to Chrome print parameters
// ---------------------------------------------------------------------------

func TestBuildPrintOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		decision        LayoutDecision
		printBackground bool
		wantWidthIn     float64
		wantHeightIn    float64
		wantLandscape   bool
	}{
		{
			name: "a4 portrait",
			decision: LayoutDecision{
				PageBox:           PageBoxA4,
				Orientation:       Portrait,
				Scale:             1.0,
				PreferCSSPageSize: true,
			},
			printBackground: true,
			wantWidthIn:     794.0 / 96.0,
			wantHeightIn:    1123.0 / 96.0,
		},
		{
			name: "a4 landscape keeps portrait paper order",
			decision: LayoutDecision{
				PageBox:     PageBoxA4,
				Orientation: Landscape,
				Scale:       1.0,
			},
			wantWidthIn:   794.0 / 96.0,
			wantHeightIn:  1123.0 / 96.0,
			wantLandscape: true,
		},
		{
			name: "letter fit-width",
			decision: LayoutDecision{
				PageBox:     PageBoxLetter,
				Orientation: Portrait,
				Scale:       0.5,
			},
			wantWidthIn:  8.5,
			wantHeightIn: 11.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := buildPrintOptions(tt.decision, tt.printBackground)

			if math.Abs(*opts.PaperWidth-tt.wantWidthIn) > 1e-9 {
				t.Errorf("PaperWidth = %v, want %v", *opts.PaperWidth, tt.wantWidthIn)
			}
			if math.Abs(*opts.PaperHeight-tt.wantHeightIn) > 1e-9 {
				t.Errorf("PaperHeight = %v, want %v", *opts.PaperHeight, tt.wantHeightIn)
			}
			if opts.Landscape != tt.wantLandscape {
				t.Errorf("Landscape = %v, want %v", opts.Landscape, tt.wantLandscape)
			}
			if *opts.Scale != tt.decision.Scale {
				t.Errorf("Scale = %v, want %v", *opts.Scale, tt.decision.Scale)
			}
			if opts.PrintBackground != tt.printBackground {
				t.Errorf("PrintBackground = %v, want %v", opts.PrintBackground, tt.printBackground)
			}
			if opts.PreferCSSPageSize != tt.decision.PreferCSSPageSize {
				t.Errorf("PreferCSSPageSize = %v, want %v", opts.PreferCSSPageSize, tt.decision.PreferCSSPageSize)
			}

			for name, m := range map[string]*float64{
				"MarginTop":    opts.MarginTop,
				"MarginBottom": opts.MarginBottom,
				"MarginLeft":   opts.MarginLeft,
				"MarginRight":  opts.MarginRight,
			} {
				if m == nil || *m != 0 {
					t.Errorf("%s = %v, want 0", name, m)
				}
			}
		})
	}
}
