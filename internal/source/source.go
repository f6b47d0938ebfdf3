package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// MaxBodySize caps how much of a web page or file is read.
const MaxBodySize = 10 * 1024 * 1024

// ErrNoInput is returned when a web page yields no readable text.
var ErrNoInput = errors.New("no input text")

// Document is resolved input text.
type Document struct {
	// Origin names where the text came from: "args", "stdin", a path or a URL.
	Origin string
	Title  string
	Text   string
}

// FromArgs joins command-line arguments with single spaces.
func FromArgs(args []string) Document {
	return Document{Origin: "args", Text: strings.Join(args, " ")}
}

// FromFile reads a text file.
func FromFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := FromReader(f, path)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// FromReader reads all text from r.
func FromReader(r io.Reader, origin string) (Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBodySize))
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", origin, err)
	}
	return Document{Origin: origin, Text: string(data)}, nil
}

// Fetcher downloads web pages and extracts their article text.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher. A nil client gets a 30 second timeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client}
}

// Fetch downloads rawURL and returns the readable article text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Document, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Document{}, fmt.Errorf("invalid URL: %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Document{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) wordlens")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode)
	}
	if resp.ContentLength > MaxBodySize {
		return Document{}, fmt.Errorf("page too large: %d bytes", resp.ContentLength)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return Document{}, fmt.Errorf("failed to read page: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return Document{}, fmt.Errorf("%w: no article in %s: %v", ErrNoInput, rawURL, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return Document{}, fmt.Errorf("%w: no article in %s", ErrNoInput, rawURL)
	}
	return Document{
		Origin: rawURL,
		Title:  strings.TrimSpace(article.Title),
		Text:   text,
	}, nil
}
