package xhtml2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-xhtml2pdf/internal/fileutil"
)

// Service orchestrates the load -> probe -> decide -> export pipeline.
// Each Service owns one browser instance; use ServicePool for parallel
// batch conversion.
type Service struct {
	cfg     serviceConfig
	backend renderBackend
}

// New creates a Service with default configuration (A4 page box,
// orientation policy). Configuration is validated here, before any
// document is processed: an invalid page box or policy fails fast rather
// than silently defaulting.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			policy:  PolicyOrientation,
			pageBox: DefaultPageBox(),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.pageBox.Validate(); err != nil {
		return nil, err
	}
	if s.cfg.policy != "" && !isValidPolicy(s.cfg.policy) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, s.cfg.policy)
	}

	// Create backend if not injected (e.g., by tests)
	if s.backend == nil {
		s.backend = newRodBackend(s.cfg.timeout)
	}

	return s, nil
}

// Convert runs the full pipeline for one document and returns the PDF
// along with the probed geometry and the layout decision that produced
// it. The context is used for cancellation and timeout.
//
// Conversions are independent: a failure here never affects other
// documents, and no partial PDF is ever produced (the export only runs
// after a valid decision exists).
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	pageBox := s.cfg.pageBox
	if input.PageBox != nil {
		pageBox = *input.PageBox
	}

	policy := s.cfg.policy
	if input.Policy != "" {
		policy = input.Policy
	}
	engine, err := NewLayoutEngine(policy)
	if err != nil {
		return nil, err
	}

	fileURL, cleanup, err := s.resolveDocument(input)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	session, err := s.backend.Open(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	defer func() { _ = session.Close() }()

	geometry, err := session.Geometry(ctx)
	if err != nil {
		return nil, fmt.Errorf("probing geometry: %w", err)
	}

	// Explicit page markers beat whole-document geometry for orientation:
	// a portrait report with one very wide table still prints portrait.
	decideFrom := geometry
	if !strings.EqualFold(string(policy), string(PolicyFitWidth)) {
		if mg, ok, mErr := session.MarkerGeometry(ctx); mErr == nil && ok {
			decideFrom = mg
		}
	}

	decision := engine.Decide(decideFrom, pageBox)

	pdf, err := session.ExportPDF(ctx, decision, !input.NoBackground)
	if err != nil {
		return nil, fmt.Errorf("exporting PDF: %w", err)
	}

	return &Result{
		PDF:      pdf,
		Geometry: geometry,
		Decision: decision,
	}, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.backend != nil {
		return s.backend.Close()
	}
	return nil
}

// validateInput checks that exactly one document source is present and
// that per-conversion overrides are valid.
func (s *Service) validateInput(input Input) error {
	if input.Path == "" && input.HTML == "" {
		return ErrNoDocument
	}
	if input.Path != "" && input.HTML != "" {
		return ErrConflictingInput
	}
	if input.PageBox != nil {
		if err := input.PageBox.Validate(); err != nil {
			return err
		}
	}
	if input.Policy != "" && !isValidPolicy(input.Policy) {
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, input.Policy)
	}
	return nil
}

// resolveDocument turns the input into a file:// URL the browser can
// load, writing a temp file for inline or preprocessed content. The
// returned cleanup is always safe to call.
func (s *Service) resolveDocument(input Input) (fileURL string, cleanup func(), err error) {
	noop := func() {}

	content := input.HTML
	if input.Path != "" {
		if !input.StripDataURIs {
			abs, err := filepath.Abs(input.Path)
			if err != nil {
				return "", noop, fmt.Errorf("resolving path: %w", err)
			}
			if !fileutil.FileExists(abs) {
				return "", noop, fmt.Errorf("%w: %s", os.ErrNotExist, abs)
			}
			return "file://" + abs, noop, nil
		}

		raw, err := os.ReadFile(input.Path) // #nosec G304 -- caller-provided document path
		if err != nil {
			return "", noop, fmt.Errorf("reading document: %w", err)
		}
		content = string(raw)
	}

	if input.StripDataURIs {
		content = StripDataURIs(content)
	}

	tmpPath, rm, err := fileutil.WriteTempFile(content, "xhtml")
	if err != nil {
		return "", noop, fmt.Errorf("staging document: %w", err)
	}
	return "file://" + tmpPath, rm, nil
}
