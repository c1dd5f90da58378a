package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-xhtml2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string // XHTML2PDF_CONFIG: config file path
	InputDir      string // XHTML2PDF_INPUT_DIR: default input directory
	OutputDir     string // XHTML2PDF_OUTPUT_DIR: default output directory
	PageSize      string // XHTML2PDF_PAGE_SIZE: a4, letter, legal
	Policy        string // XHTML2PDF_POLICY: orientation, fit-width
	Timeout       string // XHTML2PDF_TIMEOUT: per-document timeout
	Workers       int    // XHTML2PDF_WORKERS: parallel workers
	StripDataURIs bool   // XHTML2PDF_STRIP_BASE64: drop base64 payloads
}

// knownEnvVars lists valid XHTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"XHTML2PDF_CONFIG":       true,
	"XHTML2PDF_INPUT_DIR":    true,
	"XHTML2PDF_OUTPUT_DIR":   true,
	"XHTML2PDF_PAGE_SIZE":    true,
	"XHTML2PDF_POLICY":       true,
	"XHTML2PDF_TIMEOUT":      true,
	"XHTML2PDF_WORKERS":      true,
	"XHTML2PDF_STRIP_BASE64": true,
}

const envPrefix = "XHTML2PDF_"

// loadEnvConfig reads XHTML2PDF_* environment variables.
func loadEnvConfig() *envConfig {
	e := &envConfig{
		ConfigPath: os.Getenv("XHTML2PDF_CONFIG"),
		InputDir:   os.Getenv("XHTML2PDF_INPUT_DIR"),
		OutputDir:  os.Getenv("XHTML2PDF_OUTPUT_DIR"),
		PageSize:   os.Getenv("XHTML2PDF_PAGE_SIZE"),
		Policy:     os.Getenv("XHTML2PDF_POLICY"),
		Timeout:    os.Getenv("XHTML2PDF_TIMEOUT"),
	}

	if v := os.Getenv("XHTML2PDF_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			e.Workers = n
		}
	}
	if v := os.Getenv("XHTML2PDF_STRIP_BASE64"); v != "" {
		e.StripDataURIs = v == "1" || strings.EqualFold(v, "true")
	}

	return e
}

// mergeEnvConfig applies env overrides on top of file config. Env wins
// over the file; CLI flags, merged later, win over both.
func mergeEnvConfig(e *envConfig, cfg *config.Config) {
	if e.InputDir != "" {
		cfg.Input.DefaultDir = e.InputDir
	}
	if e.OutputDir != "" {
		cfg.Output.DefaultDir = e.OutputDir
	}
	if e.PageSize != "" {
		cfg.Page.Size = e.PageSize
	}
	if e.Policy != "" {
		cfg.Layout.Policy = e.Policy
	}
	if e.Timeout != "" {
		cfg.Render.Timeout = e.Timeout
	}
	if e.Workers > 0 {
		cfg.Workers = e.Workers
	}
	if e.StripDataURIs {
		cfg.Render.StripDataURIs = true
	}
}

// warnUnknownEnvVars reports XHTML2PDF_* variables that are not
// recognized, catching typos like XHTML2PDF_PAGESIZE.
func warnUnknownEnvVars(deps *Dependencies) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(deps.Stderr, "Warning: unknown environment variable %s\n", name)
		}
	}
}
