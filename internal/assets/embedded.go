package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*
var styleFS embed.FS

// EmbeddedLoader loads style presets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in preset by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styleFS.ReadFile("styles/" + name + ".yaml")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// Names lists the built-in preset names, for error hints.
func (e *EmbeddedLoader) Names() []string {
	entries, err := styleFS.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if len(name) > 5 && name[len(name)-5:] == ".yaml" {
			names = append(names, name[:len(name)-5])
		}
	}
	return names
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
