// Package extract fetches web pages and pulls out their readable article text.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/sanitize"
)

// Elements whose text is boilerplate rather than article content.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"form":     true,
	"iframe":   true,
	"svg":      true,
}

// Article is the readable content of a fetched page.
type Article struct {
	Title string
	Text  string
}

// Config bounds page fetching.
type Config struct {
	Timeout  time.Duration
	MaxBytes int64
}

// Extractor fetches URLs and extracts article text.
type Extractor struct {
	client   *http.Client
	maxBytes int64
}

// New creates an article extractor.
func New(cfg Config) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 2 << 20
	}

	return &Extractor{
		client:   &http.Client{Timeout: cfg.Timeout},
		maxBytes: cfg.MaxBytes,
	}
}

// Fetch downloads the page at rawURL and extracts its article text.
func (e *Extractor) Fetch(ctx context.Context, rawURL string) (Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Article{}, apperr.BadRequest("invalid article URL")
	}
	req.Header.Set("User-Agent", "TruthScope/1.0 (+credibility analysis)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return Article{}, apperr.Upstream("could not fetch article", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Article{}, apperr.Upstream("could not fetch article",
			fmt.Errorf("article fetch status %d", resp.StatusCode))
	}

	body := io.LimitReader(resp.Body, e.maxBytes)
	article, err := Parse(body)
	if err != nil {
		return Article{}, apperr.Upstream("could not parse article", err)
	}
	if article.Text == "" {
		return Article{}, apperr.BadRequest("no readable text found at URL")
	}
	return article, nil
}

// Parse extracts the title and readable text from an HTML document.
func Parse(r io.Reader) (Article, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Article{}, fmt.Errorf("parse html: %w", err)
	}

	var (
		title strings.Builder
		text  strings.Builder
	)

	var walk func(n *html.Node, inTitle bool)
	walk = func(n *html.Node, inTitle bool) {
		switch n.Type {
		case html.ElementNode:
			if skippedElements[n.Data] {
				return
			}
			if n.Data == "title" {
				inTitle = true
			}
		case html.TextNode:
			if inTitle {
				title.WriteString(n.Data)
				return
			}
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				text.WriteString(trimmed)
				text.WriteByte(' ')
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, inTitle)
		}
	}
	walk(doc, false)

	return Article{
		Title: sanitize.CollapseWhitespace(title.String()),
		Text:  sanitize.CollapseWhitespace(text.String()),
	}, nil
}
