package md2docx

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors: reported before any tree walk begins.
	ErrEmptyMarkdown      = errors.New("markdown content cannot be empty")
	ErrInvalidFontSize    = errors.New("invalid font size")
	ErrInvalidTitleSize   = errors.New("invalid title size")
	ErrInvalidAlignment   = errors.New("invalid alignment")
	ErrInvalidLineSpacing = errors.New("invalid line spacing")
	ErrInvalidDirection   = errors.New("invalid text direction")

	// ErrConvert wraps unexpected failures during model building or
	// packaging, preserving the original cause for diagnostics.
	ErrConvert = errors.New("conversion failed")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrStyleParse       = errors.New("failed to parse style")
)
