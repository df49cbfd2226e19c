// Package fetch retrieves image bytes for the document builder. It handles
// data: URIs, http(s) URLs, and local file paths, and parses render-size
// hints out of URL fragments. The builder never performs retrieval itself;
// it goes through the Fetcher interface so tests can substitute canned
// bytes.
package fetch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/imagemeta"
)

// Sentinel errors for retrieval operations.
var (
	ErrBadDataURL   = errors.New("malformed data URL")
	ErrEmptyPayload = errors.New("image payload is empty")
	ErrFetch        = errors.New("image retrieval failed")
)

// maxPayloadBytes caps a single image download (20MB).
const maxPayloadBytes = 20 << 20

// defaultHTTPTimeout bounds one image download when the caller's context
// carries no deadline of its own.
const defaultHTTPTimeout = 30 * time.Second

// Fetcher retrieves raw image bytes plus a content-type hint for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (data []byte, contentType string, err error)
}

// Client is the default Fetcher. The zero value is usable; HTTPClient may
// be replaced for tests.
type Client struct {
	HTTPClient *http.Client
}

// NewClient returns a Client with a bounded default HTTP client.
func NewClient() *Client {
	return &Client{HTTPClient: &http.Client{Timeout: defaultHTTPTimeout}}
}

// Fetch dispatches on the URL scheme: data: URIs are decoded in place,
// http(s) URLs are downloaded, anything else is read as a local file path.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	switch {
	case strings.HasPrefix(rawURL, "data:"):
		return decodeDataURL(rawURL)
	case strings.HasPrefix(rawURL, "http://"), strings.HasPrefix(rawURL, "https://"):
		return c.fetchHTTP(ctx, rawURL)
	default:
		return readFile(rawURL)
	}
}

func (c *Client) fetchHTTP(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: unexpected status %d for %s", ErrFetch, resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyPayload
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// decodeDataURL decodes data:[<mediatype>][;base64],<payload>.
func decodeDataURL(rawURL string) ([]byte, string, error) {
	rest := strings.TrimPrefix(rawURL, "data:")
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return nil, "", fmt.Errorf("%w: missing comma separator", ErrBadDataURL)
	}

	meta := rest[:comma]
	payload := rest[comma+1:]
	contentType := strings.TrimSuffix(meta, ";base64")

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrBadDataURL, err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrBadDataURL, err)
		}
		data = []byte(unescaped)
	}

	if len(data) == 0 {
		return nil, "", ErrEmptyPayload
	}
	return data, contentType, nil
}

func readFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own markdown
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyPayload
	}
	return data, "", nil
}

// wxhPattern matches the compact #WxH fragment form, e.g. "#640x480".
var wxhPattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

// ParseHints splits render-size hints off a URL fragment. Recognized
// fragment forms: "WxH", "w=..&h=..", and "width=..&height=..". The
// returned URL has the fragment removed regardless of whether it parsed;
// an unrecognized fragment simply yields empty hints.
func ParseHints(rawURL string) (string, imagemeta.Hints) {
	clean, fragment, found := strings.Cut(rawURL, "#")
	if !found || fragment == "" {
		return clean, imagemeta.Hints{}
	}

	if m := wxhPattern.FindStringSubmatch(fragment); m != nil {
		return clean, imagemeta.Hints{
			Width:  mustAtoi(m[1]),
			Height: mustAtoi(m[2]),
		}
	}

	values, err := url.ParseQuery(fragment)
	if err != nil {
		return clean, imagemeta.Hints{}
	}

	var hints imagemeta.Hints
	for _, key := range []string{"w", "width"} {
		if v := values.Get(key); v != "" {
			hints.Width = mustAtoi(v)
			break
		}
	}
	for _, key := range []string{"h", "height"} {
		if v := values.Get(key); v != "" {
			hints.Height = mustAtoi(v)
			break
		}
	}
	return clean, hints
}

// mustAtoi converts digit-only input already validated by the caller;
// malformed values collapse to 0 (hint unset).
func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
