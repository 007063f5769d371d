package chatextract

import (
	"context"
	"strings"
)

// Document is a raw share page supplied by the caller: opaque HTML
// plus a source label (the URL it was fetched from, or a local file
// marker). The extraction core reads it but never mutates it and
// performs no I/O of its own.
type Document struct {
	// URL is the address the page was fetched from, empty for local files.
	URL string

	// Source labels where the HTML came from, for diagnostics
	// (a URL or a "file:..." marker).
	Source string

	// HTML is the full page markup.
	HTML string
}

// Validate returns an error if the document cannot be extracted from.
// A document with no content at all is the one precondition violation
// that is rejected up front instead of producing an empty result.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.HTML) == "" {
		return Errorf(EINVALID, "document has no content")
	}
	return nil
}

// Fetcher retrieves HTML content from URLs. Implementations own HTTP
// concerns such as retries, headers, and rate limiting; the extraction
// core never performs network access.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// TextSource flattens page HTML into plain text for the text-pattern
// extraction fallback. Implementations may use simple tag stripping or
// boilerplate-removal heuristics.
type TextSource interface {
	// Text returns the flattened visible text of the page.
	Text(html string) (string, error)
}

// Converter converts HTML fragments to Markdown. Used to preserve
// message formatting (headings, lists, code blocks) when extracting
// from the DOM.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
