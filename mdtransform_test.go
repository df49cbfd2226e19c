package md2docx

import "testing"

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "LF unchanged",
			input:    "line1\nline2\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CRLF to LF",
			input:    "line1\r\nline2\r\nline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "CR to LF",
			input:    "line1\rline2\rline3",
			expected: "line1\nline2\nline3",
		},
		{
			name:     "mixed line endings",
			input:    "line1\r\nline2\rline3\nline4",
			expected: "line1\nline2\nline3\nline4",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := normalizeLineEndings(tt.input)
			if got != tt.expected {
				t.Errorf("normalizeLineEndings() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompressBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single blank line unchanged",
			input:    "para1\n\npara2",
			expected: "para1\n\npara2",
		},
		{
			name:     "three newlines compressed",
			input:    "para1\n\n\npara2",
			expected: "para1\n\npara2",
		},
		{
			name:     "many newlines compressed",
			input:    "para1\n\n\n\n\n\npara2",
			expected: "para1\n\npara2",
		},
		{
			name:     "no blank lines unchanged",
			input:    "line1\nline2",
			expected: "line1\nline2",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := compressBlankLines(tt.input)
			if got != tt.expected {
				t.Errorf("compressBlankLines() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	input := "# Title\r\n\r\n\r\n\r\nBody text\rmore"
	expected := "# Title\n\nBody text\nmore"

	if got := preprocessMarkdown(input); got != expected {
		t.Errorf("preprocessMarkdown() = %q, want %q", got, expected)
	}
}
