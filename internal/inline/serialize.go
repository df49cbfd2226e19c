package inline

import (
	"strings"

	"github.com/alnah/go-md2docx/internal/model"
)

// markerEscaper escapes characters that would otherwise re-tokenize as
// markup. Only the characters the tokenizer assigns meaning to need
// escaping; everything else round-trips as-is.
var markerEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`[`, `\[`,
)

// Markdown re-serializes runs back into the marker syntax Tokenize reads.
// Tokenizing the result yields the same run sequence, which is what lets
// structured inline content be flattened into the model's string cells and
// re-tokenized later by the packager without losing styling.
//
// Emphasis markers are emitted as state transitions rather than wrapping
// each run in its own pair: adjacent runs that share an open bold or italic
// span keep that span open between them, so an italic run nested inside a
// bold span serializes as "**bold *italic* tail**" and survives the round
// trip. Code and link runs stand alone in the model; any open emphasis is
// closed before they are written.
func Markdown(runs []model.Run) string {
	var b strings.Builder
	var bold, italic bool

	shift := func(wantBold, wantItalic bool) {
		switch {
		case bold != wantBold && italic != wantItalic:
			b.WriteString("***")
		case bold != wantBold:
			b.WriteString("**")
		case italic != wantItalic:
			b.WriteByte('*')
		}
		bold, italic = wantBold, wantItalic
	}

	for _, r := range runs {
		switch {
		case r.Code:
			shift(false, false)
			b.WriteByte('`')
			b.WriteString(r.Value)
			b.WriteByte('`')
		case r.Link != "":
			shift(false, false)
			b.WriteByte('[')
			b.WriteString(r.Value)
			b.WriteString("](")
			b.WriteString(r.Link)
			b.WriteByte(')')
		default:
			shift(r.Bold, r.Italic)
			b.WriteString(markerEscaper.Replace(r.Value))
		}
	}
	shift(false, false)

	return b.String()
}
