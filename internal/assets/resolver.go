package assets

import "errors"

// Resolver combines custom and embedded loaders with fallback logic:
// custom first when configured, falling back to embedded when the preset
// is not found there.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewResolver creates a Resolver. If customBasePath is empty, only
// embedded presets are used. Returns an error if customBasePath is set
// but invalid.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads a preset, trying the custom loader first if configured.
// Only "not found" triggers the fallback; validation and I/O errors
// surface immediately.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// Names lists the built-in preset names.
func (r *Resolver) Names() []string {
	return r.embedded.Names()
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
