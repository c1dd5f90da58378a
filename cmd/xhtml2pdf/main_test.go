package main

// Notes:
// - runMain: we test command dispatch and exit codes with injected writers.
//   Actual browser conversion is not exercised here.
// - looksLikeInput: we test extension and directory detection.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// newTestDeps returns Dependencies with buffered writers for assertions.
func newTestDeps() (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	deps := &Dependencies{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return deps, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: xhtml2pdf"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"xhtml2pdf"},
		},
		{
			name:         "--version exits 0",
			args:         []string{"--version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"xhtml2pdf"},
		},
		{
			name:         "help command exits 0",
			args:         []string{"help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: xhtml2pdf", "Commands:"},
		},
		{
			name:         "help convert shows convert help",
			args:         []string{"help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: xhtml2pdf convert"},
		},
		{
			name:         "help analyze shows analyze help",
			args:         []string{"help", "analyze"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: xhtml2pdf analyze"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"frobnicate"},
			wantCode:     ExitUsage,
			wantInStderr: []string{`unknown command "frobnicate"`},
		},
		{
			name:     "bare document path implies convert",
			args:     []string{"nonexistent.xhtml"},
			wantCode: ExitIO, // File doesn't exist
		},
		{
			name:     "convert with nonexistent file exits ExitIO",
			args:     []string{"convert", "nonexistent.xhtml"},
			wantCode: ExitIO,
		},
		{
			name:     "analyze without input exits ExitIO",
			args:     []string{"analyze"},
			wantCode: ExitIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, stdout, stderr := newTestDeps()
			code := runMain(tt.args, deps)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestVersion - Version variable
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeInput - Document path detection
// ---------------------------------------------------------------------------

func TestLooksLikeInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		input string
		want  bool
	}{
		{"report.xhtml", true},
		{"report.html", true},
		{"report.htm", true},
		{"/path/to/report.xhtml", true},
		{"report.XHTML", true}, // extension match is case insensitive
		{dir, true},            // existing directory
		{"report.pdf", false},
		{"convertt", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got := looksLikeInput(tt.input)
			if got != tt.want {
				t.Errorf("looksLikeInput(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
