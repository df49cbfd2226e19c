package md2docx

import (
	"fmt"
	"strings"
	"time"
)

// Alignment constants.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Text direction constants.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Font size bounds in points.
const (
	MinFontSize = 4
	MaxFontSize = 144
)

// Line spacing bounds (multiplier of single spacing).
const (
	MinLineSpacing = 0.5
	MaxLineSpacing = 3.0
)

// headingSizeStep is subtracted from the title size for each heading
// level below the first when no per-level size is configured.
const headingSizeStep = 4

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
	Style    *Style // Style overrides (optional, nil = converter default)
}

// Style is the document styling surface: fonts and sizes per node kind,
// per-heading-level overrides, alignment, spacing, and text direction.
// The zero value means "renderer default" for every field; DefaultStyle
// returns a fully populated baseline.
type Style struct {
	Font        string  `yaml:"font"`        // default font family
	FontSize    int     `yaml:"fontSize"`    // body size in points
	TitleSize   int     `yaml:"titleSize"`   // H1 size; deeper levels step down by 4
	LineSpacing float64 `yaml:"lineSpacing"` // multiplier, 0 = renderer default
	Direction   string  `yaml:"direction"`   // "ltr" (default) or "rtl"

	Paragraph  BlockStyle `yaml:"paragraph"`
	Code       BlockStyle `yaml:"code"`
	Blockquote BlockStyle `yaml:"blockquote"`
	Table      BlockStyle `yaml:"table"`

	// Heading holds fallbacks shared by all levels; H1..H5 override per
	// level. Resolution order for each property: per-level value, then
	// the shared heading value, then the document default, then unset.
	Heading HeadingStyle `yaml:"heading"`
	H1      HeadingStyle `yaml:"h1"`
	H2      HeadingStyle `yaml:"h2"`
	H3      HeadingStyle `yaml:"h3"`
	H4      HeadingStyle `yaml:"h4"`
	H5      HeadingStyle `yaml:"h5"`
}

// BlockStyle configures one non-heading node kind.
type BlockStyle struct {
	Font      string `yaml:"font"`
	Size      int    `yaml:"size"` // points, 0 = document FontSize
	Alignment string `yaml:"alignment"`
}

// HeadingStyle configures one heading level, or the shared fallback.
type HeadingStyle struct {
	Size      int    `yaml:"size"` // points, 0 = computed from titleSize
	Font      string `yaml:"font"`
	Alignment string `yaml:"alignment"`
}

// DefaultStyle returns the built-in baseline style.
func DefaultStyle() *Style {
	return &Style{
		Font:        "Calibri",
		FontSize:    11,
		TitleSize:   24,
		LineSpacing: 1.15,
		Direction:   DirectionLTR,
		Code: BlockStyle{
			Font: "Courier New",
			Size: 10,
		},
	}
}

// Validate checks numeric ranges and enumerated values. Returns nil for a
// nil style (nil means use defaults). Reported before any conversion work
// starts.
func (s *Style) Validate() error {
	if s == nil {
		return nil
	}

	if s.FontSize != 0 && (s.FontSize < MinFontSize || s.FontSize > MaxFontSize) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidFontSize, s.FontSize, MinFontSize, MaxFontSize)
	}
	if s.TitleSize != 0 && (s.TitleSize < MinFontSize || s.TitleSize > MaxFontSize) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidTitleSize, s.TitleSize, MinFontSize, MaxFontSize)
	}
	if s.LineSpacing != 0 && (s.LineSpacing < MinLineSpacing || s.LineSpacing > MaxLineSpacing) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidLineSpacing, s.LineSpacing, MinLineSpacing, MaxLineSpacing)
	}
	if !isValidDirection(s.Direction) {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, s.Direction)
	}

	blocks := []struct {
		name  string
		style BlockStyle
	}{
		{"paragraph", s.Paragraph},
		{"code", s.Code},
		{"blockquote", s.Blockquote},
		{"table", s.Table},
	}
	for _, b := range blocks {
		if b.style.Size != 0 && (b.style.Size < MinFontSize || b.style.Size > MaxFontSize) {
			return fmt.Errorf("%w: %s.size %d", ErrInvalidFontSize, b.name, b.style.Size)
		}
		if !isValidAlignment(b.style.Alignment) {
			return fmt.Errorf("%w: %s.alignment %q", ErrInvalidAlignment, b.name, b.style.Alignment)
		}
	}

	headings := []struct {
		name  string
		style HeadingStyle
	}{
		{"heading", s.Heading},
		{"h1", s.H1}, {"h2", s.H2}, {"h3", s.H3}, {"h4", s.H4}, {"h5", s.H5},
	}
	for _, h := range headings {
		if h.style.Size != 0 && (h.style.Size < MinFontSize || h.style.Size > MaxFontSize) {
			return fmt.Errorf("%w: %s.size %d", ErrInvalidTitleSize, h.name, h.style.Size)
		}
		if !isValidAlignment(h.style.Alignment) {
			return fmt.Errorf("%w: %s.alignment %q", ErrInvalidAlignment, h.name, h.style.Alignment)
		}
	}

	return nil
}

// headingLevel returns the per-level override for 1..5.
func (s *Style) headingLevel(level int) HeadingStyle {
	switch level {
	case 1:
		return s.H1
	case 2:
		return s.H2
	case 3:
		return s.H3
	case 4:
		return s.H4
	default:
		return s.H5
	}
}

// HeadingSize resolves the size for a heading level: explicit per-level
// size first, then the shared heading size, then the computed step-down
// from the title size for levels below the first, then the title size
// itself.
func (s *Style) HeadingSize(level int) int {
	if o := s.headingLevel(level); o.Size > 0 {
		return o.Size
	}
	if s.Heading.Size > 0 {
		return s.Heading.Size
	}
	if level > 1 {
		size := s.TitleSize - (level-1)*headingSizeStep
		if size < MinFontSize {
			size = MinFontSize
		}
		return size
	}
	return s.TitleSize
}

// HeadingAlignment resolves alignment: per-level, then the shared heading
// alignment, then empty (renderer default).
func (s *Style) HeadingAlignment(level int) string {
	if o := s.headingLevel(level); o.Alignment != "" {
		return o.Alignment
	}
	return s.Heading.Alignment
}

// HeadingFont resolves the font: per-level, then the shared heading font,
// then the document default font, then empty (renderer default).
func (s *Style) HeadingFont(level int) string {
	if o := s.headingLevel(level); o.Font != "" {
		return o.Font
	}
	if s.Heading.Font != "" {
		return s.Heading.Font
	}
	return s.Font
}

func isValidAlignment(alignment string) bool {
	switch strings.ToLower(alignment) {
	case "", AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

func isValidDirection(direction string) bool {
	switch strings.ToLower(direction) {
	case "", DirectionLTR, DirectionRTL:
		return true
	}
	return false
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	styleName string
	assetPath string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second
