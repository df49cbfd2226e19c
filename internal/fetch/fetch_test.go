package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alnah/go-md2docx/internal/imagemeta"
)

func TestParseHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantURL   string
		wantHints imagemeta.Hints
	}{
		{
			name:      "no fragment",
			input:     "https://example.com/a.png",
			wantURL:   "https://example.com/a.png",
			wantHints: imagemeta.Hints{},
		},
		{
			name:      "compact WxH form",
			input:     "https://example.com/a.png#640x480",
			wantURL:   "https://example.com/a.png",
			wantHints: imagemeta.Hints{Width: 640, Height: 480},
		},
		{
			name:      "short query form",
			input:     "a.png#w=100&h=50",
			wantURL:   "a.png",
			wantHints: imagemeta.Hints{Width: 100, Height: 50},
		},
		{
			name:      "long query form",
			input:     "a.png#width=300&height=200",
			wantURL:   "a.png",
			wantHints: imagemeta.Hints{Width: 300, Height: 200},
		},
		{
			name:      "width only",
			input:     "a.png#w=100",
			wantURL:   "a.png",
			wantHints: imagemeta.Hints{Width: 100},
		},
		{
			name:      "height only",
			input:     "a.png#h=75",
			wantURL:   "a.png",
			wantHints: imagemeta.Hints{Height: 75},
		},
		{
			name:      "unrecognized fragment stripped with no hints",
			input:     "a.png#section-2",
			wantURL:   "a.png",
			wantHints: imagemeta.Hints{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotURL, gotHints := ParseHints(tt.input)
			if gotURL != tt.wantURL {
				t.Errorf("url = %q, want %q", gotURL, tt.wantURL)
			}
			if gotHints != tt.wantHints {
				t.Errorf("hints = %+v, want %+v", gotHints, tt.wantHints)
			}
		})
	}
}

func TestFetchDataURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		url             string
		wantData        string
		wantContentType string
		wantErr         error
	}{
		{
			name:            "base64 payload",
			url:             "data:image/png;base64,aGVsbG8=",
			wantData:        "hello",
			wantContentType: "image/png",
		},
		{
			name:            "percent encoded payload",
			url:             "data:text/plain,hello%20world",
			wantData:        "hello world",
			wantContentType: "text/plain",
		},
		{
			name:    "missing comma",
			url:     "data:image/png;base64",
			wantErr: ErrBadDataURL,
		},
		{
			name:    "invalid base64",
			url:     "data:image/png;base64,!!!",
			wantErr: ErrBadDataURL,
		},
		{
			name:    "empty payload",
			url:     "data:image/png;base64,",
			wantErr: ErrEmptyPayload,
		},
	}

	client := NewClient()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, contentType, err := client.Fetch(context.Background(), tt.url)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.wantData {
				t.Errorf("data = %q, want %q", data, tt.wantData)
			}
			if contentType != tt.wantContentType {
				t.Errorf("contentType = %q, want %q", contentType, tt.wantContentType)
			}
		})
	}
}

func TestFetchHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "image/gif")
			_, _ = w.Write([]byte("GIF89a-bytes"))
		case "/empty":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient()

	t.Run("success with content type", func(t *testing.T) {
		data, contentType, err := client.Fetch(context.Background(), srv.URL+"/ok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "GIF89a-bytes" {
			t.Errorf("data = %q", data)
		}
		if contentType != "image/gif" {
			t.Errorf("contentType = %q, want image/gif", contentType)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		_, _, err := client.Fetch(context.Background(), srv.URL+"/missing")
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("err = %v, want ErrFetch", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		_, _, err := client.Fetch(context.Background(), srv.URL+"/empty")
		if !errors.Is(err, ErrEmptyPayload) {
			t.Fatalf("err = %v, want ErrEmptyPayload", err)
		}
	})
}

func TestFetchFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		client := NewClient()
		_, _, err := client.Fetch(context.Background(), "testdata/does-not-exist.png")
		if !errors.Is(err, ErrFetch) {
			t.Fatalf("err = %v, want ErrFetch", err)
		}
	})
}
