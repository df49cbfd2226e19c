package md2docx

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/alnah/go-md2docx/internal/inline"
	"github.com/alnah/go-md2docx/internal/model"
)

// emuPerPixel converts CSS pixels to English Metric Units at 96 DPI.
const emuPerPixel = 9525

// tableWidthTwips is the full usable width of a letter page in twips.
const tableWidthTwips = 9026

// docxPackager renders the block model into a .docx container via
// go-docx. It implements the Packager interface.
type docxPackager struct{}

func newDocxPackager() *docxPackager {
	return &docxPackager{}
}

func (p *docxPackager) Package(m *model.Document, style *Style) ([]byte, error) {
	r := &docxRenderer{
		doc:      docx.New().WithDefaultTheme(),
		style:    style,
		headings: m.Headings,
		counters: make(map[counterKey]int),
	}

	r.renderBlocks(m.Blocks)

	var buf bytes.Buffer
	if _, err := r.doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing docx package: %w", err)
	}
	return buf.Bytes(), nil
}

// counterKey tracks one ordered numbering stream: all lists sharing a
// sequence id at the same nesting depth count through the same stream, so
// a nested continuation restarts its own depth without disturbing the
// parent's.
type counterKey struct {
	sequenceID int
	depth      int
}

type docxRenderer struct {
	doc      *docx.Docx
	style    *Style
	headings []model.HeadingRecord
	counters map[counterKey]int
}

func (r *docxRenderer) renderBlocks(blocks []*model.Block) {
	for _, b := range blocks {
		r.renderBlock(b)
	}
}

func (r *docxRenderer) renderBlock(b *model.Block) {
	switch b.Kind {
	case model.KindHeading:
		r.renderHeading(b)
	case model.KindParagraph:
		para := r.paragraph(r.style.Paragraph.Alignment)
		r.renderRuns(para, b.Runs, runStyle{
			font: orDefault(r.style.Paragraph.Font, r.style.Font),
			size: orDefaultInt(r.style.Paragraph.Size, r.style.FontSize),
		})
	case model.KindList:
		r.renderList(b)
	case model.KindCodeBlock:
		r.renderCodeBlock(b)
	case model.KindBlockquote:
		r.renderBlockquote(b)
	case model.KindImage:
		r.renderImage(b)
	case model.KindTable:
		r.renderTable(b)
	case model.KindPageBreak:
		r.doc.AddParagraph().AddPageBreaks()
	case model.KindTOCPlaceholder:
		r.renderTOC()
	case model.KindComment:
		// Comments carry no visible output.
	}
}

func (r *docxRenderer) renderHeading(b *model.Block) {
	para := r.paragraph(r.style.HeadingAlignment(b.Level))

	size := r.style.HeadingSize(b.Level)
	font := r.style.HeadingFont(b.Level)
	for _, run := range b.Runs {
		text := para.AddText(run.Value)
		text.Bold()
		if run.Italic {
			text.Italic()
		}
		if size > 0 {
			text.Size(halfPoints(size))
		}
		if run.Code {
			applyFont(text, orDefault(r.style.Code.Font, font))
		} else {
			applyFont(text, font)
		}
	}
}

func (r *docxRenderer) renderList(b *model.Block) {
	key := counterKey{sequenceID: b.SequenceID, depth: b.Depth}
	if b.Ordered {
		// Restart this depth's stream; the parent levels of the same
		// sequence keep counting where they left off.
		r.counters[key] = 0
	}

	for _, item := range b.Children {
		var prefix string
		if b.Ordered {
			r.counters[key]++
			prefix = strconv.Itoa(r.counters[key]) + "."
		} else {
			prefix = "•"
		}
		r.renderListItem(item, b.Depth, prefix)
	}
}

func (r *docxRenderer) renderListItem(item *model.Block, depth int, prefix string) {
	first := true
	for _, child := range item.Children {
		switch child.Kind {
		case model.KindParagraph:
			para := r.doc.AddParagraph()
			marker := para.AddText("")
			for i := 0; i <= depth; i++ {
				marker.AddTab()
			}
			if first {
				para.AddText(prefix + " ")
				first = false
			}
			r.renderRuns(para, child.Runs, runStyle{
				font: orDefault(r.style.Paragraph.Font, r.style.Font),
				size: orDefaultInt(r.style.Paragraph.Size, r.style.FontSize),
			})
		case model.KindList:
			r.renderList(child)
		default:
			r.renderBlock(child)
		}
	}
}

func (r *docxRenderer) renderCodeBlock(b *model.Block) {
	font := orDefault(r.style.Code.Font, "Courier New")
	size := orDefaultInt(r.style.Code.Size, r.style.FontSize)

	for _, line := range highlightCode(b.Code, b.Language) {
		para := r.paragraph(r.style.Code.Alignment)
		if len(line) == 0 {
			text := para.AddText("")
			applyFont(text, font)
			continue
		}
		for _, seg := range line {
			text := para.AddText(seg.text)
			applyFont(text, font)
			if size > 0 {
				text.Size(halfPoints(size))
			}
			if seg.color != "" {
				text.Color(seg.color)
			}
			if seg.bold {
				text.Bold()
			}
		}
	}
}

func (r *docxRenderer) renderBlockquote(b *model.Block) {
	for _, child := range b.Children {
		if child.Kind != model.KindParagraph {
			r.renderBlock(child)
			continue
		}
		para := r.paragraph(r.style.Blockquote.Alignment)
		para.AddText("").AddTab()
		quoted := make([]model.Run, len(child.Runs))
		for i, run := range child.Runs {
			run.Italic = true
			quoted[i] = run
		}
		r.renderRuns(para, quoted, runStyle{
			font: orDefault(r.style.Blockquote.Font, r.style.Font),
			size: orDefaultInt(r.style.Blockquote.Size, r.style.FontSize),
		})
	}
}

func (r *docxRenderer) renderImage(b *model.Block) {
	para := r.doc.AddParagraph()
	run, err := para.AddInlineDrawing(b.Data)
	if err != nil {
		text := para.AddText("image could not be displayed")
		text.Italic()
		return
	}
	setDrawingSize(run, b.Width, b.Height)
}

func (r *docxRenderer) renderTable(b *model.Block) {
	cols := len(b.Headers)
	for _, row := range b.TableRows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	rows := len(b.TableRows)
	headerOffset := 0
	if len(b.Headers) > 0 {
		rows++
		headerOffset = 1
	}

	tbl := r.doc.AddTable(rows, cols, tableWidthTwips, nil)

	fill := func(rowIdx int, cells []string, bold bool) {
		for colIdx := 0; colIdx < cols && colIdx < len(cells); colIdx++ {
			para := tbl.TableRows[rowIdx].TableCells[colIdx].AddParagraph()
			if a := r.style.Table.Alignment; a != "" {
				para.Justification(justification(a))
			}
			// Cell strings are flat marker text; the tokenizer turns them
			// back into styled runs here on the packager side.
			runs := inline.Tokenize(cells[colIdx], inline.Options{})
			if bold {
				for i := range runs {
					runs[i].Bold = true
				}
			}
			r.renderRuns(para, runs, runStyle{
				font: orDefault(r.style.Table.Font, r.style.Font),
				size: orDefaultInt(r.style.Table.Size, r.style.FontSize),
			})
		}
	}

	if headerOffset == 1 {
		fill(0, b.Headers, true)
	}
	for i, row := range b.TableRows {
		fill(i+headerOffset, row, false)
	}
}

// renderTOC emits the accumulated heading records as an indented entry
// list at the placeholder position.
func (r *docxRenderer) renderTOC() {
	for _, h := range r.headings {
		para := r.doc.AddParagraph()
		if h.Level > 1 {
			marker := para.AddText("")
			for i := 1; i < h.Level; i++ {
				marker.AddTab()
			}
		}
		text := para.AddText(h.Text)
		applyFont(text, r.style.Font)
		if r.style.FontSize > 0 {
			text.Size(halfPoints(r.style.FontSize))
		}
	}
	r.doc.AddParagraph().AddPageBreaks()
}

// runStyle carries the resolved font and size for one block context.
type runStyle struct {
	font string
	size int
}

func (r *docxRenderer) renderRuns(para *docx.Paragraph, runs []model.Run, rs runStyle) {
	for _, run := range runs {
		if run.Link != "" {
			para.AddLink(run.Value, run.Link)
			continue
		}

		text := para.AddText(run.Value)
		if run.Code {
			applyFont(text, orDefault(r.style.Code.Font, "Courier New"))
			if s := orDefaultInt(r.style.Code.Size, rs.size); s > 0 {
				text.Size(halfPoints(s))
			}
			continue
		}

		applyFont(text, rs.font)
		if rs.size > 0 {
			text.Size(halfPoints(rs.size))
		}
		if run.Bold {
			text.Bold()
		}
		if run.Italic {
			text.Italic()
		}
	}
}

// paragraph creates a paragraph with the block's resolved alignment.
// Direction is not mapped onto alignment here: right-to-left rendering is
// a run-level property, and go-docx's run builder does not expose the rtl
// flag. Until it does, Direction is accepted and validated but has no
// effect on the package output.
func (r *docxRenderer) paragraph(alignment string) *docx.Paragraph {
	para := r.doc.AddParagraph()
	if alignment != "" {
		para.Justification(justification(alignment))
	}
	return para
}

// setDrawingSize overrides the drawing extent with the resolved render
// dimensions. go-docx sizes drawings from the intrinsic header; the model
// has already clamped and aspect-corrected them.
func setDrawingSize(run *docx.Run, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for _, child := range run.Children {
		d, ok := child.(*docx.Drawing)
		if !ok || d.Inline == nil || d.Inline.Extent == nil {
			continue
		}
		d.Inline.Extent.CX = int64(width) * emuPerPixel
		d.Inline.Extent.CY = int64(height) * emuPerPixel
	}
}

func applyFont(run *docx.Run, font string) {
	if font != "" {
		run.Font(font, font, font, "default")
	}
}

// justification maps the public alignment names onto OOXML values.
func justification(alignment string) string {
	switch strings.ToLower(alignment) {
	case AlignLeft:
		return "start"
	case AlignRight:
		return "end"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "both"
	}
	return "start"
}

// halfPoints converts a point size to the half-point string go-docx
// expects.
func halfPoints(points int) string {
	return strconv.Itoa(points * 2)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orDefaultInt(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}
