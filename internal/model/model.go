// Package model defines the block-node document model produced by the
// builder and consumed by the docx packager. The model is write-once: a
// conversion pass creates it, the packager reads it, nothing mutates it
// afterwards.
package model

// Kind identifies the variant of a Block.
type Kind int

// Block kinds.
const (
	KindHeading Kind = iota
	KindParagraph
	KindList
	KindListItem
	KindCodeBlock
	KindBlockquote
	KindImage
	KindTable
	KindComment
	KindPageBreak
	KindTOCPlaceholder
)

// String returns the kind name for logging and test failures.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindList:
		return "list"
	case KindListItem:
		return "listItem"
	case KindCodeBlock:
		return "codeBlock"
	case KindBlockquote:
		return "blockquote"
	case KindImage:
		return "image"
	case KindTable:
		return "table"
	case KindComment:
		return "comment"
	case KindPageBreak:
		return "pageBreak"
	case KindTOCPlaceholder:
		return "tocPlaceholder"
	}
	return "unknown"
}

// Run is a contiguous span of text sharing one styling decision.
// Bold and Italic may combine; Code and Link each stand alone: a run is
// either emphasized text, an inline-code span, or a link span.
type Run struct {
	Value  string
	Bold   bool
	Italic bool
	Code   bool
	Link   string // non-empty for link runs; the link target URL
}

// Block is one node of the document model. Fields are populated according
// to Kind; unused fields stay zero.
type Block struct {
	Kind Kind

	// KindHeading
	Level      int // 1..5
	BookmarkID string

	// KindHeading, KindParagraph: styled text content.
	Runs []Run

	// KindList
	Ordered    bool
	SequenceID int // > 0 iff Ordered; shared by nested continuations
	Depth      int // nesting level, 0 for top-level lists

	// KindList (ListItem children), KindListItem, KindBlockquote
	Children []*Block

	// KindCodeBlock
	Code     string
	Language string

	// KindImage
	Alt    string
	URL    string
	Data   []byte
	Format string // "png", "jpeg", "gif"
	Width  int    // resolved render width in pixels
	Height int    // resolved render height in pixels, always set

	// KindTable
	Headers   []string
	TableRows [][]string

	// KindComment
	Text string
}

// HeadingRecord is one table-of-contents entry. Records are appended in
// document order and never reordered or deduplicated.
type HeadingRecord struct {
	Text       string
	Level      int // 1..5
	BookmarkID string
}

// Document is the finished model handed to the packager.
type Document struct {
	Blocks   []*Block
	Headings []HeadingRecord

	// MaxSequenceID is the highest ordered-list sequence id assigned during
	// the walk. The packager registers one numbering definition per id in
	// 1..MaxSequenceID so unrelated lists never share a running counter.
	MaxSequenceID int

	// HasTOC reports whether a [TOC] placeholder was seen.
	HasTOC bool
}
