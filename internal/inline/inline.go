// Package inline converts flat markdown-formatted strings into ordered
// sequences of styled text runs, and back. One parametrized engine serves
// both body text (links recognized) and heading text (links suppressed).
package inline

import (
	"strings"

	"github.com/alnah/go-md2docx/internal/model"
)

// Options parametrize tokenization.
type Options struct {
	// NoLinks disables [text](url) recognition. Heading text uses this:
	// headings carry no link runs, so brackets pass through literally.
	NoLinks bool
}

// escapable is the fixed set of characters a backslash passes through
// literally. A backslash before any other character stays a literal
// backslash.
const escapable = "\\`*_{}[]()#+-.!|"

// Tokenize scans text left to right and returns styled runs.
//
// Token precedence at each position, first match wins: escape, link (unless
// inside code or opts.NoLinks), backtick code toggle, ***, **, *, literal.
// Inside a code span every other rule is suppressed; characters accumulate
// literally until the closing backtick.
//
// Unterminated markers degrade to literal punctuation: at end of scan an
// open emphasis marker is prepended back onto the trailing text and the
// flags cleared, and an open code span gets its backtick back. A result
// with no runs at all degrades to a single empty run. Whitespace-only
// trailing text after recovery is dropped.
func Tokenize(text string, opts Options) []model.Run {
	var (
		runs         []model.Run
		cur          strings.Builder
		bold, italic bool
		code         bool
	)

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		runs = append(runs, model.Run{Value: cur.String(), Bold: bold, Italic: italic})
		cur.Reset()
	}

	i := 0
	for i < len(text) {
		c := text[i]

		if code {
			if c == '`' {
				if cur.Len() > 0 {
					runs = append(runs, model.Run{Value: cur.String(), Code: true})
					cur.Reset()
				}
				code = false
				i++
				continue
			}
			cur.WriteByte(c)
			i++
			continue
		}

		if c == '\\' && i+1 < len(text) && strings.IndexByte(escapable, text[i+1]) >= 0 {
			cur.WriteByte(text[i+1])
			i += 2
			continue
		}

		if c == '[' && !opts.NoLinks {
			if run, next, ok := scanLink(text, i, bold, italic); ok {
				flush()
				runs = append(runs, run)
				i = next
				continue
			}
		}

		if c == '`' {
			flush()
			code = true
			i++
			continue
		}

		if c == '*' {
			switch {
			case strings.HasPrefix(text[i:], "***"):
				flush()
				// Triple markers do not track bold and italic independently:
				// from a fully inactive state both turn on, otherwise both
				// turn off together.
				if !bold && !italic {
					bold, italic = true, true
				} else {
					bold, italic = false, false
				}
				i += 3
				continue
			case strings.HasPrefix(text[i:], "**"):
				flush()
				bold = !bold
				i += 2
				continue
			case (i == 0 || text[i-1] != '*') && (i+1 >= len(text) || text[i+1] != '*'):
				flush()
				italic = !italic
				i++
				continue
			}
		}

		cur.WriteByte(c)
		i++
	}

	// End-of-scan recovery.
	trailing := cur.String()
	if code {
		trailing = "`" + trailing
	}
	if bold || italic {
		trailing = recoveryMarker(bold, italic) + trailing
	}
	if strings.TrimSpace(trailing) != "" {
		runs = append(runs, model.Run{Value: trailing})
	}

	if len(runs) == 0 {
		runs = []model.Run{{}}
	}
	return runs
}

// scanLink attempts to recognize [text](url) starting at the '[' at position
// i. Matching is deliberately non-nested: first unescaped ']', which must be
// immediately followed by '(', then the first ')' after that. Link text
// containing ']' or a URL containing ')' therefore never matches and the
// bracket falls through to literal text.
func scanLink(text string, i int, bold, italic bool) (model.Run, int, bool) {
	closeBracket := -1
	for j := i + 1; j < len(text); j++ {
		if text[j] == '\\' {
			j++
			continue
		}
		if text[j] == ']' {
			closeBracket = j
			break
		}
	}
	if closeBracket < 0 || closeBracket+1 >= len(text) || text[closeBracket+1] != '(' {
		return model.Run{}, 0, false
	}

	closeParen := strings.IndexByte(text[closeBracket+2:], ')')
	if closeParen < 0 {
		return model.Run{}, 0, false
	}
	closeParen += closeBracket + 2

	run := model.Run{
		Value:  text[i+1 : closeBracket],
		Bold:   bold,
		Italic: italic,
		Link:   text[closeBracket+2 : closeParen],
	}
	return run, closeParen + 1, true
}

// recoveryMarker returns the literal marker to prepend for the still-active
// emphasis flags at end of scan.
func recoveryMarker(bold, italic bool) string {
	switch {
	case bold && italic:
		return "***"
	case bold:
		return "**"
	default:
		return "*"
	}
}
