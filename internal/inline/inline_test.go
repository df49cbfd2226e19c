package inline

import (
	"reflect"
	"testing"

	"github.com/alnah/go-md2docx/internal/model"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []model.Run
	}{
		{
			name:     "plain text",
			input:    "plain text",
			expected: []model.Run{{Value: "plain text"}},
		},
		{
			name:     "empty input degrades to single empty run",
			input:    "",
			expected: []model.Run{{}},
		},
		{
			name:     "whitespace only degrades to single empty run",
			input:    "   ",
			expected: []model.Run{{}},
		},
		{
			name:  "mixed styles in one string",
			input: "**bold** and *italic* and `code` and [t](u)",
			expected: []model.Run{
				{Value: "bold", Bold: true},
				{Value: " and "},
				{Value: "italic", Italic: true},
				{Value: " and "},
				{Value: "code", Code: true},
				{Value: " and "},
				{Value: "t", Link: "u"},
			},
		},
		{
			name:     "unterminated bold degrades to literal text",
			input:    "**unterminated",
			expected: []model.Run{{Value: "**unterminated"}},
		},
		{
			name:     "unterminated italic degrades to literal text",
			input:    "*unterminated",
			expected: []model.Run{{Value: "*unterminated"}},
		},
		{
			name:     "unterminated triple degrades to literal text",
			input:    "***unterminated",
			expected: []model.Run{{Value: "***unterminated"}},
		},
		{
			name:  "unterminated code gets its backtick back",
			input: "a `code",
			expected: []model.Run{
				{Value: "a "},
				{Value: "`code"},
			},
		},
		{
			name:     "triple marker toggles bold and italic together",
			input:    "***both***",
			expected: []model.Run{{Value: "both", Bold: true, Italic: true}},
		},
		{
			name:  "italic nested inside bold",
			input: "**bold *italic* bold**",
			expected: []model.Run{
				{Value: "bold ", Bold: true},
				{Value: "italic", Bold: true, Italic: true},
				{Value: " bold", Bold: true},
			},
		},
		{
			name:     "markup suppressed inside code span",
			input:    "`a *b* [c](d)`",
			expected: []model.Run{{Value: "a *b* [c](d)", Code: true}},
		},
		{
			name:     "escaped stars stay literal",
			input:    `\*not italic\*`,
			expected: []model.Run{{Value: "*not italic*"}},
		},
		{
			name:     "escaped backtick stays literal",
			input:    "a \\`tick",
			expected: []model.Run{{Value: "a `tick"}},
		},
		{
			name:     "unrecognized escape keeps the backslash",
			input:    `\q`,
			expected: []model.Run{{Value: `\q`}},
		},
		{
			name:     "link run",
			input:    "[text](url)",
			expected: []model.Run{{Value: "text", Link: "url"}},
		},
		{
			name:     "link inherits surrounding emphasis",
			input:    "**[t](u)**",
			expected: []model.Run{{Value: "t", Bold: true, Link: "u"}},
		},
		{
			name:     "link without closing paren falls through to literal",
			input:    "[text](url",
			expected: []model.Run{{Value: "[text](url"}},
		},
		{
			name:     "bracket without link syntax stays literal",
			input:    "a [b] c",
			expected: []model.Run{{Value: "a [b] c"}},
		},
		{
			name:  "isolated star surrounded by spaces toggles italic",
			input: "a * b",
			expected: []model.Run{
				{Value: "a "},
				{Value: "* b"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Tokenize(tt.input, Options{})
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenizeNoLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []model.Run
	}{
		{
			name:     "link syntax stays literal",
			input:    "[t](u)",
			expected: []model.Run{{Value: "[t](u)"}},
		},
		{
			name:  "emphasis still recognized",
			input: "**bold** [x](y)",
			expected: []model.Run{
				{Value: "bold", Bold: true},
				{Value: " [x](y)"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Tokenize(tt.input, Options{NoLinks: true})
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		runs     []model.Run
		expected string
	}{
		{
			name:     "plain run",
			runs:     []model.Run{{Value: "hello"}},
			expected: "hello",
		},
		{
			name: "styled spans separated by plain text",
			runs: []model.Run{
				{Value: "b", Bold: true},
				{Value: " "},
				{Value: "i", Italic: true},
			},
			expected: "**b** *i*",
		},
		{
			name:     "bold and italic together uses the triple marker",
			runs:     []model.Run{{Value: "both", Bold: true, Italic: true}},
			expected: "***both***",
		},
		{
			name: "italic nested inside bold keeps the bold span open",
			runs: []model.Run{
				{Value: "bold ", Bold: true},
				{Value: "italic", Bold: true, Italic: true},
				{Value: " tail", Bold: true},
			},
			expected: "**bold *italic* tail**",
		},
		{
			name: "code and link runs close open emphasis first",
			runs: []model.Run{
				{Value: "a", Bold: true},
				{Value: "c", Code: true},
				{Value: "t", Link: "u"},
			},
			expected: "**a**`c`[t](u)",
		},
		{
			name:     "literal markers escaped in plain text",
			runs:     []model.Run{{Value: "a*b[c"}},
			expected: `a\*b\[c`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Markdown(tt.runs)
			if got != tt.expected {
				t.Errorf("Markdown() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestRoundTrip checks that for balanced inputs, serializing the runs back
// to marker text and re-tokenizing yields the identical run sequence.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain",
		"**bold** and *italic* and `code` and [t](u)",
		"***both*** then **b** then *i*",
		`escaped \* star and \[ bracket`,
		"**bold *nested italic* tail**",
		"**b *i***",
		"*i **b***",
		"`code with *stars* inside`",
		"[label](https://example.com/page)",
	}

	for _, input := range inputs {
		input := input
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			first := Tokenize(input, Options{})
			again := Tokenize(Markdown(first), Options{})
			if !reflect.DeepEqual(first, again) {
				t.Errorf("round trip diverged for %q:\nfirst = %+v\nagain = %+v", input, first, again)
			}
		})
	}
}
