// Package config loads and validates YAML configuration for the
// xhtml2pdf CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-xhtml2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config value")
)

// Config holds all configuration for batch conversion.
type Config struct {
	Input   InputConfig  `yaml:"input"`
	Output  OutputConfig `yaml:"output"`
	Page    PageConfig   `yaml:"page"`
	Layout  LayoutConfig `yaml:"layout"`
	Render  RenderConfig `yaml:"render"`
	Workers int          `yaml:"workers"` // parallel workers (0 = auto)
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// PageConfig defines the target page box. A named size and a custom
// pixel box are mutually exclusive; the custom box wins when both are
// set.
type PageConfig struct {
	Size   string `yaml:"size"`   // "a4", "letter", "legal" (default: "a4")
	Width  int    `yaml:"width"`  // custom width in px at 96 DPI
	Height int    `yaml:"height"` // custom height in px at 96 DPI
}

// LayoutConfig selects the layout decision policy.
type LayoutConfig struct {
	Policy string `yaml:"policy"` // "orientation" or "fit-width" (default: "orientation")
}

// RenderConfig defines rendering options.
type RenderConfig struct {
	Timeout       string `yaml:"timeout"`       // per-document timeout, e.g. "30s", "2m"
	NoBackground  bool   `yaml:"noBackground"`  // skip background graphics
	StripDataURIs bool   `yaml:"stripDataURIs"` // drop base64 payloads before rendering
}

// Known value lists. Kept in sync with the library's named sizes and
// policies without importing it.
var (
	knownPageSizes = []string{"a4", "letter", "legal"}
	knownPolicies  = []string{"orientation", "fit-width"}
)

// Validate checks value ranges and enumerations. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if c.Page.Size != "" && !contains(knownPageSizes, strings.ToLower(c.Page.Size)) {
		return fmt.Errorf("%w: page.size %q (must be one of %s)",
			ErrInvalidConfig, c.Page.Size, strings.Join(knownPageSizes, ", "))
	}
	if (c.Page.Width != 0) != (c.Page.Height != 0) {
		return fmt.Errorf("%w: page.width and page.height must be set together", ErrInvalidConfig)
	}
	if c.Page.Width < 0 || c.Page.Height < 0 {
		return fmt.Errorf("%w: page dimensions must be positive, got %dx%d",
			ErrInvalidConfig, c.Page.Width, c.Page.Height)
	}

	if c.Layout.Policy != "" && !contains(knownPolicies, strings.ToLower(c.Layout.Policy)) {
		return fmt.Errorf("%w: layout.policy %q (must be one of %s)",
			ErrInvalidConfig, c.Layout.Policy, strings.Join(knownPolicies, ", "))
	}

	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil {
			return fmt.Errorf("%w: render.timeout %q: %v", ErrInvalidConfig, c.Render.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: render.timeout must be positive, got %q", ErrInvalidConfig, c.Render.Timeout)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-xhtml2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-xhtml2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
