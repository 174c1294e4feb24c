// Package browser renders the transfer-market page and exposes query access
// over its content. Two renderers are provided: a headless Chrome engine for
// script-built markup and a static HTTP fetcher for plain HTML.
package browser

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Renderer loads a URL and returns its rendered content. Implementations
// must release any rendering session before returning, on success or
// failure.
type Renderer interface {
	Render(ctx context.Context, url string) (*Page, error)
	Name() string
}

// Page is the rendered content of a single URL.
type Page struct {
	URL string

	doc *goquery.Document
}

// NewPage parses rendered HTML into a queryable Page.
func NewPage(url, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "browser: parse html")
	}
	return &Page{URL: url, doc: doc}, nil
}

// Find queries the content tree by CSS selector.
func (p *Page) Find(selector string) *goquery.Selection {
	return p.doc.Find(selector)
}

// Text returns the full visible text of the page.
func (p *Page) Text() string {
	return p.doc.Text()
}

// EmbeddedBlocks returns the raw text of every script block on the page in
// document order, skipping blocks with no payload. These are the elements
// conventionally used to carry machine-readable data.
func (p *Page) EmbeddedBlocks() []string {
	var blocks []string
	p.doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})
	return blocks
}
