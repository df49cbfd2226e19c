package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemLoader loads style presets from basePath/styles/{name}.yaml.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	info, err := os.Stat(basePath)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBasePath, basePath)
	}
	return &FilesystemLoader{basePath: basePath}, nil
}

// LoadStyle loads a preset from the styles subdirectory.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path := filepath.Join(f.basePath, "styles", name+".yaml")
	content, err := os.ReadFile(path) // #nosec G304 -- name validated, base chosen by the user
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
