// Package bookmark derives unique bookmark anchors for headings and
// accumulates the ordered table-of-contents entry list handed to the
// packager.
package bookmark

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2docx/internal/model"
)

// maxIDLength caps the sanitized fragment of a bookmark id. Word bookmark
// names are limited to 40 characters.
const maxIDLength = 40

// idPrefix marks generated TOC bookmarks.
const idPrefix = "_Toc_"

// Sanitize normalizes text into a safe bookmark identifier fragment.
// Spaces become underscores, every other character that is not a letter,
// digit, or underscore is stripped, and a result that does not start with
// a letter or underscore gets an underscore prepended. The result is
// truncated to 40 characters. Empty input yields just the forced
// underscore prefix.
func Sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r == '_' || isLetter(r) || isDigit(r):
			b.WriteRune(r)
		}
	}

	id := b.String()
	if id == "" || (!isLetter(rune(id[0])) && id[0] != '_') {
		id = "_" + id
	}
	if len(id) > maxIDLength {
		id = id[:maxIDLength]
	}
	return id
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Collector assigns bookmark ids to headings and records the ordered TOC
// entry list. One Collector lives for exactly one conversion; the counter
// that makes ids unique never leaks across documents.
type Collector struct {
	headings []model.HeadingRecord
	counter  int
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records one heading and returns its bookmark id. displayText is what
// the TOC shows; rawText is the marker-bearing source the id derives from,
// with literal '*' stripped but link and code markup left in place. The id
// suffix is a per-document monotonic counter, so two headings with the
// same text still get distinct bookmarks. Records are appended in call
// order and never deduplicated: duplicate heading text produces duplicate
// TOC entries with distinct bookmarks.
func (c *Collector) Add(displayText, rawText string, level int) string {
	clean := strings.ReplaceAll(rawText, "*", "")
	c.counter++
	id := idPrefix + Sanitize(clean) + "_" + strconv.Itoa(c.counter)

	c.headings = append(c.headings, model.HeadingRecord{
		Text:       displayText,
		Level:      level,
		BookmarkID: id,
	})
	return id
}

// Headings returns the accumulated TOC entries in document order.
func (c *Collector) Headings() []model.HeadingRecord {
	return c.headings
}
