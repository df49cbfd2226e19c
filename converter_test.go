package md2docx

// Notes:
// - Tests Converter.Convert with a mock packager to isolate pipeline logic
//   from the real DOCX serialization
// - Validation tests confirm failures are reported before any tree walk
// - Error wrapping tests confirm ErrConvert preserves the underlying cause

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2docx/internal/model"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPackager struct {
	called bool
	doc    *model.Document
	style  *Style
	output []byte
	err    error
}

func (m *mockPackager) Package(doc *model.Document, style *Style) ([]byte, error) {
	m.called = true
	m.doc = doc
	m.style = style
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("PK\x03\x04"), nil
}

type mockFetcher struct {
	data []byte
	ct   string
	err  error
}

func (m *mockFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.data, m.ct, nil
}

// ---------------------------------------------------------------------------
// Constructor
// ---------------------------------------------------------------------------

func TestNewConverter_Defaults(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error: %v", err)
	}
	if conv.style == nil {
		t.Error("style not initialized")
	}
	if conv.fetcher == nil {
		t.Error("fetcher not initialized")
	}
	if conv.packager == nil {
		t.Error("packager not initialized")
	}
}

func TestNewConverter_InvalidStyle(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithStyle(&Style{FontSize: 999}))
	if !errors.Is(err, ErrInvalidFontSize) {
		t.Errorf("error = %v, want ErrInvalidFontSize", err)
	}
}

func TestNewConverter_UnknownStyleName(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithStyleName("nonexistent"))
	if !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("error = %v, want ErrStyleNotFound", err)
	}
}

func TestNewConverter_NamedPreset(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithStyleName("print"))
	if err != nil {
		t.Fatalf("NewConverter() error: %v", err)
	}
	if conv.style.Font != "Georgia" {
		t.Errorf("style.Font = %q, want print preset font", conv.style.Font)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

// ---------------------------------------------------------------------------
// Convert
// ---------------------------------------------------------------------------

func TestConvert_EmptyMarkdown(t *testing.T) {
	t.Parallel()

	pkg := &mockPackager{}
	conv, err := NewConverter(WithPackager(pkg))
	if err != nil {
		t.Fatal(err)
	}

	_, err = conv.Convert(context.Background(), Input{})
	if !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("error = %v, want ErrEmptyMarkdown", err)
	}
	if pkg.called {
		t.Error("packager called despite validation failure")
	}
}

func TestConvert_InvalidInputStyle(t *testing.T) {
	t.Parallel()

	pkg := &mockPackager{}
	conv, err := NewConverter(WithPackager(pkg))
	if err != nil {
		t.Fatal(err)
	}

	_, err = conv.Convert(context.Background(), Input{
		Markdown: "# Hi",
		Style:    &Style{Direction: "sideways"},
	})
	if !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("error = %v, want ErrInvalidDirection", err)
	}
	if pkg.called {
		t.Error("packager called despite validation failure")
	}
}

func TestConvert_Success(t *testing.T) {
	t.Parallel()

	pkg := &mockPackager{output: []byte("docx-bytes")}
	conv, err := NewConverter(WithPackager(pkg))
	if err != nil {
		t.Fatal(err)
	}

	result, err := conv.Convert(context.Background(), Input{
		Markdown: "# Title\n\nSome **bold** text.",
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if string(result.DOCX) != "docx-bytes" {
		t.Errorf("DOCX = %q", result.DOCX)
	}
	if result.Document == nil || len(result.Document.Blocks) != 2 {
		t.Fatalf("Document blocks = %+v, want heading + paragraph", result.Document)
	}
	if result.Document.Blocks[0].Kind != model.KindHeading {
		t.Errorf("first block kind = %v, want heading", result.Document.Blocks[0].Kind)
	}
}

func TestConvert_InputStyleOverridesConverterStyle(t *testing.T) {
	t.Parallel()

	pkg := &mockPackager{}
	conv, err := NewConverter(WithPackager(pkg))
	if err != nil {
		t.Fatal(err)
	}

	custom := DefaultStyle()
	custom.Font = "Garamond"
	if _, err := conv.Convert(context.Background(), Input{Markdown: "text", Style: custom}); err != nil {
		t.Fatal(err)
	}
	if pkg.style == nil || pkg.style.Font != "Garamond" {
		t.Errorf("packager received style %+v, want per-input override", pkg.style)
	}
}

func TestConvert_PackagerErrorWrapped(t *testing.T) {
	t.Parallel()

	cause := errors.New("zip exploded")
	conv, err := NewConverter(WithPackager(&mockPackager{err: cause}))
	if err != nil {
		t.Fatal(err)
	}

	_, err = conv.Convert(context.Background(), Input{Markdown: "text"})
	if !errors.Is(err, ErrConvert) {
		t.Fatalf("error = %v, want ErrConvert", err)
	}
	if !strings.Contains(err.Error(), "zip exploded") {
		t.Errorf("wrapped error %q lost the cause", err)
	}
}

func TestConvert_CancelledContext(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithPackager(&mockPackager{}))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = conv.Convert(ctx, Input{Markdown: "![img](http://example.com/a.png)"})
	if err == nil {
		t.Error("Convert() with cancelled context succeeded")
	}
}

func TestConvert_FailedImageDegradesToPlaceholder(t *testing.T) {
	t.Parallel()

	pkg := &mockPackager{}
	conv, err := NewConverter(
		WithPackager(pkg),
		WithFetcher(&mockFetcher{err: errors.New("connection refused")}),
		WithTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := conv.Convert(context.Background(), Input{
		Markdown: "![logo](http://example.com/logo.png)",
	})
	if err != nil {
		t.Fatalf("Convert() error: %v, want placeholder degradation", err)
	}

	var found bool
	for _, b := range result.Document.Blocks {
		for _, r := range b.Runs {
			if strings.Contains(r.Value, "image could not be displayed") {
				found = true
			}
		}
	}
	if !found {
		t.Error("placeholder run not found in document model")
	}
}
