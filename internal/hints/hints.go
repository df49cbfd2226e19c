// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForTimeout returns a hint about increasing timeout for slow conversions.
func ForTimeout() string {
	return format("for documents with many remote images, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2docx/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2docx) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2docx") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForNoInputFiles returns hints when a directory holds no markdown files.
func ForNoInputFiles() string {
	return format("expected files with .md or .markdown extension")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
