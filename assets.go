package md2docx

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// LoadStyle loads a named style preset and parses it into a Style.
//
// Built-in presets ("default", "compact", "print") ship embedded in the
// binary. When basePath is non-empty, basePath/styles/{name}.yaml shadows
// the embedded set, falling back to embedded for names not present there.
// The parsed style is validated before it is returned.
func LoadStyle(name, basePath string) (*Style, error) {
	resolver, err := assets.NewResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	raw, err := resolver.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return nil, fmt.Errorf("%w: %q (built-in: %v)", ErrStyleNotFound, name, resolver.Names())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	// Start from the baseline so presets only need to state what differs.
	style := DefaultStyle()
	if err := yamlutil.UnmarshalStrict([]byte(raw), style); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrStyleParse, name, err)
	}
	if err := style.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrStyleParse, name, err)
	}

	return style, nil
}

// StyleNames lists the built-in preset names.
func StyleNames() []string {
	return assets.NewEmbeddedLoader().Names()
}
