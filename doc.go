// Package md2docx converts Markdown documents to DOCX.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.docx", result.DOCX, 0644)
//
// The result contains both the DOCX bytes (result.DOCX) and the
// intermediate block model (result.Document) for debugging.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line normalization, blank line compression)
//  2. Block model construction via Goldmark (GFM): headings with TOC
//     bookmarks, list numbering sequences, styled inline runs, images
//     with sniffed dimensions
//  3. DOCX packaging via go-docx, with code coloring via Chroma
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2docx.NewConverter(
//	    md2docx.WithTimeout(2 * time.Minute),
//	    md2docx.WithStyleName("print"),
//	    md2docx.WithAssetPath("/path/to/custom/assets"),
//	)
//
// Styles can also be provided directly, or per conversion via Input:
//
//	style := md2docx.DefaultStyle()
//	style.Font = "Georgia"
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: content,
//	    Style:    style,
//	})
//
// # Images
//
// Remote (http/https), data: URI, and local file images are supported.
// Dimensions come from URL fragment hints (#WxH or #w=&h=) or from the
// image header, with sensible clamping and defaults. A failing image
// never aborts the conversion; it degrades to a visible placeholder.
//
// # Errors
//
// Validation problems are reported via sentinel errors (ErrEmptyMarkdown,
// ErrInvalidFontSize, ...) before any work starts. Unexpected pipeline
// failures come back wrapped in ErrConvert.
package md2docx
