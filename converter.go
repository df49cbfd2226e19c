package md2docx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-md2docx/internal/builder"
	"github.com/alnah/go-md2docx/internal/fetch"
	"github.com/alnah/go-md2docx/internal/model"
)

// Compile-time interface implementation checks.
var (
	_ Packager      = (*docxPackager)(nil)
	_ fetch.Fetcher = (*fetch.Client)(nil)
)

// Packager consumes the finalized block model plus style configuration and
// emits the binary document package. The default implementation targets
// .docx via go-docx; substitute implementations in tests or for other
// container formats.
type Packager interface {
	Package(doc *model.Document, style *Style) ([]byte, error)
}

// Result contains conversion output.
type Result struct {
	// DOCX is the packaged document.
	DOCX []byte

	// Document is the intermediate block model, exposed for debugging and
	// for callers that package the model themselves.
	Document *model.Document
}

// Converter orchestrates the markdown-to-DOCX pipeline.
// Create with NewConverter, convert with Convert. A Converter is safe for
// sequential reuse; each Convert call carries its own walk state.
type Converter struct {
	cfg      converterConfig
	style    *Style
	fetcher  fetch.Fetcher
	packager Packager
	log      *slog.Logger
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g. WithStyle, WithTimeout).
// Returns an error if a named style cannot be loaded or fails validation.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Resolve a named style preset unless an explicit style was given.
	if c.style == nil && c.cfg.styleName != "" {
		style, err := LoadStyle(c.cfg.styleName, c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.style = style
	}
	if c.style == nil {
		c.style = DefaultStyle()
	}
	if err := c.style.Validate(); err != nil {
		return nil, err
	}

	if c.fetcher == nil {
		c.fetcher = fetch.NewClient()
	}
	if c.packager == nil {
		c.packager = newDocxPackager()
	}

	return c, nil
}

// WithStyle sets the document style directly, bypassing preset loading.
func WithStyle(style *Style) Option {
	return func(c *Converter) { c.style = style }
}

// WithStyleName selects a built-in or on-disk style preset by name.
func WithStyleName(name string) Option {
	return func(c *Converter) { c.cfg.styleName = name }
}

// WithAssetPath sets a directory whose styles/ subdirectory overrides the
// embedded presets, with fallback to embedded for unknown names.
func WithAssetPath(path string) Option {
	return func(c *Converter) { c.cfg.assetPath = path }
}

// WithFetcher replaces the image retrieval collaborator.
func WithFetcher(f fetch.Fetcher) Option {
	return func(c *Converter) { c.fetcher = f }
}

// WithPackager replaces the document packager.
func WithPackager(p Packager) Option {
	return func(c *Converter) { c.packager = p }
}

// WithLogger sets the logger used for per-image recovery warnings.
func WithLogger(log *slog.Logger) Option {
	return func(c *Converter) { c.log = log }
}

// WithTimeout sets the conversion timeout, applied when the caller's
// context carries no deadline of its own.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2docx: WithTimeout duration must be positive")
	}
	return func(c *Converter) { c.cfg.timeout = d }
}

// Convert runs the full pipeline: validate, preprocess, build the block
// model, package to DOCX bytes.
//
// Validation failures are reported before any tree walk begins. Image
// retrieval failures never abort the conversion: the failing image is
// replaced with a visible placeholder and logged. Every other failure is
// all-or-nothing and comes back wrapped in ErrConvert with the original
// cause preserved.
func (c *Converter) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	style := c.style
	if input.Style != nil {
		if err := input.Style.Validate(); err != nil {
			return nil, err
		}
		style = input.Style
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	source := preprocessMarkdown(input.Markdown)

	doc, err := builder.New(c.fetcher, c.log).Build(ctx, []byte(source))
	if err != nil {
		return nil, fmt.Errorf("%w: building document model: %v", ErrConvert, err)
	}

	data, err := c.packager.Package(doc, style)
	if err != nil {
		return nil, fmt.Errorf("%w: packaging document: %v", ErrConvert, err)
	}

	return &Result{DOCX: data, Document: doc}, nil
}

// validateInput checks that required fields are present and valid.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	return nil
}
