// Package assets loads named style presets. Presets are YAML documents
// matching the public Style schema; the built-in set ships embedded in the
// binary, and a custom directory can shadow it with fallback to embedded
// for unknown names.
package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested style preset does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the preset name contains invalid
	// characters such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a
	// valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")
)

// Loader defines the contract for loading style presets by name.
type Loader interface {
	// LoadStyle returns the raw YAML of a preset (name without the .yaml
	// extension). Returns ErrStyleNotFound if the preset doesn't exist.
	LoadStyle(name string) (string, error)
}

// ValidateAssetName checks that a preset name is safe for use as a
// filename: no path separators, no dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
