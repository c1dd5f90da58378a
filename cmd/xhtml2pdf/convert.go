package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	xhtml2pdf "github.com/alnah/go-xhtml2pdf"
	"github.com/alnah/go-xhtml2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrWritePDF           = errors.New("failed to write PDF file")
	ErrInvalidExtension   = errors.New("file must have .xhtml, .html, or .htm extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// documentExtensions lists the input file extensions the CLI converts.
var documentExtensions = []string{".xhtml", ".html", ".htm"}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// conversionParams groups per-document input settings shared across the
// batch.
type conversionParams struct {
	noBackground  bool
	stripDataURIs bool
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, deps *Dependencies) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	mergeFlags(flags, cfg)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no XHTML documents found in %s", inputPath)
	}

	opts, err := buildServiceOptions(cfg)
	if err != nil {
		return err
	}

	poolSize := xhtml2pdf.ResolvePoolSize(cfg.Workers)
	if poolSize > len(files) {
		poolSize = len(files)
	}
	if flags.common.verbose {
		fmt.Fprintf(deps.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := newPoolAdapter(xhtml2pdf.NewServicePool(poolSize, opts...))
	defer func() { _ = pool.pool.Close() }()

	params := &conversionParams{
		noBackground:  cfg.Render.NoBackground,
		stripDataURIs: cfg.Render.StripDataURIs,
	}

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, deps)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}
	return nil
}

// loadConfig loads the named config, env overrides applied on top of the
// file, CLI flags merged later on top of both.
func loadConfig(nameOrPath string) (*config.Config, error) {
	env := loadEnvConfig()

	if nameOrPath == "" {
		nameOrPath = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if nameOrPath != "" {
		loaded, err := config.LoadConfig(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	mergeEnvConfig(env, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.width != 0 {
		cfg.Page.Width = flags.page.width
	}
	if flags.page.height != 0 {
		cfg.Page.Height = flags.page.height
	}
	if flags.layout.policy != "" {
		cfg.Layout.Policy = flags.layout.policy
	}
	if flags.render.timeout != "" {
		cfg.Render.Timeout = flags.render.timeout
	}
	if flags.render.noBackground {
		cfg.Render.NoBackground = true
	}
	if flags.render.stripDataURIs {
		cfg.Render.StripDataURIs = true
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
}

// buildServiceOptions translates config into library options.
func buildServiceOptions(cfg *config.Config) ([]xhtml2pdf.Option, error) {
	var opts []xhtml2pdf.Option

	switch {
	case cfg.Page.Width != 0 && cfg.Page.Height != 0:
		box := xhtml2pdf.PageBox{Width: cfg.Page.Width, Height: cfg.Page.Height}
		if err := box.Validate(); err != nil {
			return nil, err
		}
		opts = append(opts, xhtml2pdf.WithPageBox(box))
	case cfg.Page.Size != "":
		box, err := xhtml2pdf.ParsePageSize(cfg.Page.Size)
		if err != nil {
			return nil, err
		}
		opts = append(opts, xhtml2pdf.WithPageBox(box))
	}

	if cfg.Layout.Policy != "" {
		opts = append(opts, xhtml2pdf.WithPolicy(xhtml2pdf.Policy(cfg.Layout.Policy)))
	}

	if cfg.Render.Timeout != "" {
		d, err := time.ParseDuration(cfg.Render.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, cfg.Render.Timeout)
		}
		opts = append(opts, xhtml2pdf.WithTimeout(d))
	}

	return opts, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// discoverFiles finds all XHTML documents to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !hasDocumentExtension(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasDocumentExtension(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// hasDocumentExtension checks for a convertible file extension.
func hasDocumentExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range documentExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// resolveOutputPath determines the PDF output path for a document.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > xhtml2pdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, xhtml2pdf.MaxPoolSize)
	}
	return nil
}
