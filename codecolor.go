package md2docx

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightStyle is the chroma style used for code block coloring.
const highlightStyle = "github"

// codeSegment is one colored fragment of a code line.
type codeSegment struct {
	text  string
	color string // RRGGBB hex without '#', empty for default ink
	bold  bool
}

// highlightCode tokenizes a code block with chroma and splits the colored
// tokens into lines. An unknown or empty language falls back to chroma's
// plain-text lexer, which yields a single uncolored segment per line.
func highlightCode(code, language string) [][]codeSegment {
	code = strings.TrimSuffix(code, "\n")

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plainLines(code)
	}

	lines := [][]codeSegment{nil}
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := style.Get(token.Type)

		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			seg := codeSegment{text: part, bold: entry.Bold == chroma.Yes}
			if entry.Colour.IsSet() {
				seg.color = fmt.Sprintf("%02X%02X%02X", entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
			}
			lines[len(lines)-1] = append(lines[len(lines)-1], seg)
		}
	}
	return lines
}

// plainLines splits code into uncolored segments, one per line.
func plainLines(code string) [][]codeSegment {
	raw := strings.Split(code, "\n")
	lines := make([][]codeSegment, len(raw))
	for i, line := range raw {
		if line != "" {
			lines[i] = []codeSegment{{text: line}}
		}
	}
	return lines
}
