// Package readability provides a chatextract.TextSource backed by
// go-readability. Boilerplate removal gives the text segmentation
// strategy cleaner input than a raw parse-tree walk on pages heavy
// with navigation and footers.
package readability

import (
	"strings"

	"github.com/fwojciec/chatextract"
	"github.com/go-shiori/go-readability"
)

// Ensure Source implements chatextract.TextSource at compile time.
var _ chatextract.TextSource = (*Source)(nil)

// Source extracts the main text content from a page.
type Source struct{}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{}
}

// Text returns the page's main content as plain text, with
// boilerplate stripped.
func (s *Source) Text(html string) (string, error) {
	if html == "" {
		return "", chatextract.Errorf(chatextract.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(article.TextContent), nil
}
