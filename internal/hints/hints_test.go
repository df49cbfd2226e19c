package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	paths := []string{
		"md2docx.yaml",
		"/home/u/.config/go-md2docx/md2docx.yaml",
	}
	hint := ForConfigNotFound(paths)

	if !strings.Contains(hint, "--config") {
		t.Errorf("hint %q missing --config suggestion", hint)
	}
	if !strings.Contains(hint, ".config/go-md2docx") {
		t.Errorf("hint %q missing user config path", hint)
	}
	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint %q has wrong prefix", hint)
	}
}

func TestForConfigNotFoundNoUserPath(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"md2docx.yaml"})
	if strings.Contains(hint, "or create") {
		t.Errorf("hint %q suggests creating a path it never found", hint)
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	hint := ForStyleNotFound([]string{"default", "print"})
	if !strings.Contains(hint, "default, print") {
		t.Errorf("hint %q missing available styles", hint)
	}

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"timeout":   ForTimeout(),
		"outputDir": ForOutputDirectory(),
		"noInput":   ForNoInputFiles(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s hint %q has wrong prefix", name, hint)
		}
	}
}
