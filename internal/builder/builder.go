// Package builder walks the goldmark syntax tree and produces the
// block-node document model the docx packager consumes. The walk is a
// single synchronous depth-first pass in document order; every piece of
// per-conversion state (sequence allocator, bookmark collector) lives on
// the walk and dies with it.
package builder

import (
	"bytes"
	"context"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2docx/internal/bookmark"
	"github.com/alnah/go-md2docx/internal/fetch"
	"github.com/alnah/go-md2docx/internal/imagemeta"
	"github.com/alnah/go-md2docx/internal/inline"
	"github.com/alnah/go-md2docx/internal/model"
)

// imagePlaceholder replaces an image that could not be retrieved or
// decoded. The conversion continues; only the single image degrades.
const imagePlaceholder = "image could not be displayed"

// maxHeadingLevel clamps goldmark's H6 into the model's 1..5 range.
const maxHeadingLevel = 5

// Builder converts markdown source into a model.Document. Safe for reuse
// across conversions; each Build call carries its own walk state.
type Builder struct {
	md      goldmark.Markdown
	fetcher fetch.Fetcher
	log     *slog.Logger
}

// New creates a Builder. fetcher retrieves image bytes; log receives
// per-image recovery warnings. Either may be nil: a nil fetcher disables
// image embedding (every image degrades to its placeholder), a nil logger
// falls back to slog.Default().
func New(fetcher fetch.Fetcher, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		fetcher: fetcher,
		log:     log,
	}
}

// Build parses source and walks the resulting tree into a Document.
// Image retrieval failures are recovered locally (placeholder + warning);
// the only error paths are context cancellation.
func (b *Builder) Build(ctx context.Context, source []byte) (*model.Document, error) {
	root := b.md.Parser().Parse(text.NewReader(source))

	w := &walk{
		src:       source,
		fetcher:   b.fetcher,
		log:       b.log,
		bookmarks: bookmark.NewCollector(),
		seq:       &sequenceAllocator{},
	}

	blocks, err := w.blocks(ctx, root, 0)
	if err != nil {
		return nil, err
	}

	return &model.Document{
		Blocks:        blocks,
		Headings:      w.bookmarks.Headings(),
		MaxSequenceID: w.seq.Max(),
		HasTOC:        w.hasTOC,
	}, nil
}

// walk is the per-conversion state threaded through the tree traversal.
type walk struct {
	src       []byte
	fetcher   fetch.Fetcher
	log       *slog.Logger
	bookmarks *bookmark.Collector
	seq       *sequenceAllocator
	hasTOC    bool
}

// blocks converts the children of parent. inheritedSeq carries the nearest
// ancestor ordered list's sequence id down through nested lists (0 when
// there is none).
func (w *walk) blocks(ctx context.Context, parent ast.Node, inheritedSeq int) ([]*model.Block, error) {
	var out []*model.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		converted, err := w.block(ctx, n, inheritedSeq, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, converted...)
	}
	return out, nil
}

// block converts one block node. A single AST node can yield several model
// blocks: a paragraph holding images emits the images as standalone blocks
// after the paragraph text.
func (w *walk) block(ctx context.Context, n ast.Node, inheritedSeq, depth int) ([]*model.Block, error) {
	switch node := n.(type) {
	case *ast.Heading:
		return []*model.Block{w.heading(ctx, node)}, nil

	case *ast.Paragraph:
		return w.paragraph(ctx, node)

	case *ast.TextBlock:
		// Tight list items wrap their text in a TextBlock instead of a
		// Paragraph; the model does not distinguish them.
		return w.paragraph(ctx, node)

	case *ast.List:
		list, err := w.list(ctx, node, inheritedSeq, depth)
		if err != nil {
			return nil, err
		}
		return []*model.Block{list}, nil

	case *ast.FencedCodeBlock:
		return []*model.Block{{
			Kind:     model.KindCodeBlock,
			Code:     w.blockText(node),
			Language: string(node.Language(w.src)),
		}}, nil

	case *ast.CodeBlock:
		return []*model.Block{{
			Kind: model.KindCodeBlock,
			Code: w.blockText(node),
		}}, nil

	case *ast.Blockquote:
		var children []*model.Block
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			converted, err := w.block(ctx, c, inheritedSeq, depth)
			if err != nil {
				return nil, err
			}
			children = append(children, converted...)
		}
		return []*model.Block{{Kind: model.KindBlockquote, Children: children}}, nil

	case *ast.ThematicBreak:
		return []*model.Block{{Kind: model.KindPageBreak}}, nil

	case *ast.HTMLBlock:
		return w.htmlBlock(node), nil

	case *east.Table:
		return []*model.Block{w.table(ctx, node)}, nil

	default:
		// Unknown block kinds (task list markers live inline, definition
		// lists are not enabled) are skipped rather than guessed at.
		return nil, nil
	}
}

func (w *walk) heading(ctx context.Context, node *ast.Heading) *model.Block {
	level := node.Level
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}

	runs, _ := w.inlineRuns(ctx, node, true)
	display := plainText(runs)
	id := w.bookmarks.Add(display, inline.Markdown(runs), level)

	return &model.Block{
		Kind:       model.KindHeading,
		Level:      level,
		Runs:       runs,
		BookmarkID: id,
	}
}

func (w *walk) paragraph(ctx context.Context, node ast.Node) ([]*model.Block, error) {
	runs, images := w.inlineRuns(ctx, node, false)

	if len(images) == 0 && isTOCMarker(runs) {
		w.hasTOC = true
		return []*model.Block{{Kind: model.KindTOCPlaceholder}}, nil
	}

	var out []*model.Block
	if len(runs) > 0 && !onlyWhitespace(runs) {
		out = append(out, &model.Block{Kind: model.KindParagraph, Runs: runs})
	} else if len(images) == 0 {
		out = append(out, &model.Block{Kind: model.KindParagraph, Runs: []model.Run{{}}})
	}
	out = append(out, images...)
	return out, nil
}

func (w *walk) list(ctx context.Context, node *ast.List, inheritedSeq, depth int) (*model.Block, error) {
	block := &model.Block{
		Kind:    model.KindList,
		Ordered: node.IsOrdered(),
		Depth:   depth,
	}

	// Independently-started ordered lists allocate a fresh sequence id;
	// ordered lists nested anywhere under an ordered ancestor inherit its
	// id and only deepen the nesting level.
	childSeq := inheritedSeq
	if block.Ordered {
		if inheritedSeq > 0 {
			block.SequenceID = inheritedSeq
		} else {
			block.SequenceID = w.seq.Next()
		}
		childSeq = block.SequenceID
	}

	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		li := &model.Block{Kind: model.KindListItem}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			converted, err := w.block(ctx, c, childSeq, depth+1)
			if err != nil {
				return nil, err
			}
			li.Children = append(li.Children, converted...)
		}
		block.Children = append(block.Children, li)
	}
	return block, nil
}

func (w *walk) htmlBlock(node *ast.HTMLBlock) []*model.Block {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(w.src))
	}
	if node.HasClosure() {
		buf.Write(node.ClosureLine.Value(w.src))
	}

	raw := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(raw, "<!--") {
		// Raw HTML has no representation in a word-processing model.
		return nil
	}

	comment := strings.TrimPrefix(raw, "<!--")
	comment = strings.TrimSuffix(comment, "-->")
	return []*model.Block{{Kind: model.KindComment, Text: strings.TrimSpace(comment)}}
}

func (w *walk) table(ctx context.Context, node *east.Table) *model.Block {
	block := &model.Block{Kind: model.KindTable}

	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			// Cell content is flattened back to marker syntax; the
			// packager re-tokenizes it so cells keep their styling while
			// the model stores plain strings.
			runs, _ := w.inlineRuns(ctx, cell, false)
			cells = append(cells, inline.Markdown(runs))
		}

		if _, ok := row.(*east.TableHeader); ok {
			block.Headers = cells
			continue
		}
		block.TableRows = append(block.TableRows, cells)
	}
	return block
}

// blockText collects the raw source lines of a code block.
func (w *walk) blockText(node ast.Node) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(w.src))
	}
	return buf.String()
}

// inlineRuns converts the inline children of node into styled runs. Images
// encountered along the way come back as separate blocks, already fetched
// and sized, in document order. heading selects the heading variant: links
// flatten to their text instead of becoming link runs.
func (w *walk) inlineRuns(ctx context.Context, node ast.Node, heading bool) ([]model.Run, []*model.Block) {
	var runs []model.Run
	var images []*model.Block
	w.walkInline(ctx, node, runState{}, heading, &runs, &images)
	return mergeRuns(runs), images
}

// runState carries the emphasis flags accumulated from enclosing nodes.
type runState struct {
	bold   bool
	italic bool
}

func (w *walk) walkInline(ctx context.Context, parent ast.Node, st runState, heading bool, runs *[]model.Run, images *[]*model.Block) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			v := string(node.Segment.Value(w.src))
			switch {
			case node.HardLineBreak():
				v += "\n"
			case node.SoftLineBreak():
				v += " "
			}
			appendRun(runs, model.Run{Value: v, Bold: st.bold, Italic: st.italic})

		case *ast.String:
			appendRun(runs, model.Run{Value: string(node.Value), Bold: st.bold, Italic: st.italic})

		case *ast.Emphasis:
			next := st
			if node.Level >= 2 {
				next.bold = true
			} else {
				next.italic = true
			}
			w.walkInline(ctx, node, next, heading, runs, images)

		case *ast.CodeSpan:
			appendRun(runs, model.Run{Value: w.nodeText(node), Code: true})

		case *ast.Link:
			if heading {
				// Headings carry no link runs; the link text flattens
				// into the surrounding emphasis context.
				w.walkInline(ctx, node, st, heading, runs, images)
				continue
			}
			appendRun(runs, model.Run{
				Value:  w.nodeText(node),
				Bold:   st.bold,
				Italic: st.italic,
				Link:   string(node.Destination),
			})

		case *ast.AutoLink:
			url := string(node.URL(w.src))
			if heading {
				appendRun(runs, model.Run{Value: url, Bold: st.bold, Italic: st.italic})
				continue
			}
			appendRun(runs, model.Run{Value: string(node.Label(w.src)), Bold: st.bold, Italic: st.italic, Link: url})

		case *ast.Image:
			*images = append(*images, w.image(ctx, node))

		case *ast.RawHTML:
			// Inline HTML is dropped, matching the block-level rule.

		default:
			// Strikethrough and other inline containers flatten into
			// their children with the current emphasis state.
			w.walkInline(ctx, node, st, heading, runs, images)
		}
	}
}

// image fetches, sniffs, and sizes one image node. Any failure is logged
// and replaced with a visible placeholder paragraph; later images are
// unaffected.
func (w *walk) image(ctx context.Context, node *ast.Image) *model.Block {
	rawURL := string(node.Destination)
	alt := w.nodeText(node)

	cleanURL, hints := fetch.ParseHints(rawURL)

	if w.fetcher == nil {
		w.log.Warn("image skipped: no fetcher configured", "url", cleanURL)
		return placeholderBlock()
	}

	data, contentType, err := w.fetcher.Fetch(ctx, cleanURL)
	if err != nil {
		w.log.Warn("image could not be retrieved", "url", cleanURL, "error", err)
		return placeholderBlock()
	}

	info := imagemeta.Sniff(data)
	size := imagemeta.Resolve(hints, info).WithFallbackHeight()

	return &model.Block{
		Kind:   model.KindImage,
		Alt:    alt,
		URL:    cleanURL,
		Data:   data,
		Format: imageFormat(contentType, cleanURL, info.Format),
		Width:  size.Width,
		Height: size.Height,
	}
}

func placeholderBlock() *model.Block {
	return &model.Block{
		Kind: model.KindParagraph,
		Runs: []model.Run{{Value: imagePlaceholder, Italic: true}},
	}
}

// imageFormat decides the output format: content-type first, then the URL
// extension, then whatever the sniffer inferred (PNG when nothing else is
// known).
func imageFormat(contentType, url, sniffed string) string {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			switch mediaType {
			case "image/png":
				return imagemeta.FormatPNG
			case "image/jpeg", "image/jpg":
				return imagemeta.FormatJPEG
			case "image/gif":
				return imagemeta.FormatGIF
			}
		}
	}
	switch strings.ToLower(path.Ext(url)) {
	case ".png":
		return imagemeta.FormatPNG
	case ".jpg", ".jpeg":
		return imagemeta.FormatJPEG
	case ".gif":
		return imagemeta.FormatGIF
	}
	return sniffed
}

// nodeText flattens a node's inline subtree to bare text.
func (w *walk) nodeText(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(w.src))
		case *ast.String:
			b.Write(node.Value)
		default:
			b.WriteString(w.nodeText(c))
		}
	}
	return b.String()
}

// appendRun drops empty fragments so soft breaks and empty emphasis spans
// never materialize as runs.
func appendRun(runs *[]model.Run, r model.Run) {
	if r.Value == "" && r.Link == "" {
		return
	}
	*runs = append(*runs, r)
}

// mergeRuns coalesces adjacent runs with identical styling, matching what
// a single tokenizer pass over equivalent flat text would produce.
func mergeRuns(runs []model.Run) []model.Run {
	if len(runs) < 2 {
		return runs
	}
	out := runs[:1]
	for _, r := range runs[1:] {
		last := &out[len(out)-1]
		if r.Bold == last.Bold && r.Italic == last.Italic && !r.Code && !last.Code && r.Link == "" && last.Link == "" {
			last.Value += r.Value
			continue
		}
		out = append(out, r)
	}
	return out
}

func plainText(runs []model.Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Value)
	}
	return b.String()
}

func onlyWhitespace(runs []model.Run) bool {
	return strings.TrimSpace(plainText(runs)) == ""
}

func isTOCMarker(runs []model.Run) bool {
	text := strings.TrimSpace(plainText(runs))
	return strings.EqualFold(text, "[TOC]")
}
