// Package goquery implements DOM-based service detection and the DOM
// heuristic extraction strategy using the goquery library.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chatextract"
)

var _ chatextract.ServiceDetector = (*Detector)(nil)

// Detector identifies AI chat services from HTML content. It checks
// page metadata first, then service-specific DOM markers such as data
// attributes and custom elements that are unique to each service's
// share pages.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified service.
// Returns ServiceUnknown if the service cannot be determined.
func (d *Detector) Detect(html string) chatextract.Service {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return chatextract.ServiceUnknown
	}

	// Page metadata carries the canonical URL on most share pages and
	// is the most reliable signal when present.
	if service := d.detectFromMeta(doc); service != chatextract.ServiceUnknown {
		return service
	}

	// ChatGPT markers
	// data-message-author-role is unique to ChatGPT share pages
	if d.hasSelector(doc, "[data-message-author-role]") ||
		d.hasSelector(doc, "[data-testid^='conversation-turn']") {
		return chatextract.ServiceChatGPT
	}

	// Claude markers
	if d.hasSelector(doc, "[data-testid='user-message']") ||
		d.hasSelector(doc, ".font-claude-message") {
		return chatextract.ServiceClaude
	}

	// Gemini markers
	// user-query and model-response are Angular custom elements
	if d.hasSelector(doc, "user-query") ||
		d.hasSelector(doc, "model-response") ||
		d.hasSelector(doc, "message-content") {
		return chatextract.ServiceGemini
	}

	// Grok markers
	if d.hasSelector(doc, "[class*='message-bubble']") {
		return chatextract.ServiceGrok
	}

	return chatextract.ServiceUnknown
}

// detectFromMeta checks og:url and the canonical link for a known
// service domain.
func (d *Detector) detectFromMeta(doc *goquery.Document) chatextract.Service {
	candidates := []string{}
	doc.Find("meta[property='og:url']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			candidates = append(candidates, content)
		}
	})
	doc.Find("link[rel='canonical']").Each(func(_ int, s *goquery.Selection) {
		if href, exists := s.Attr("href"); exists {
			candidates = append(candidates, href)
		}
	})

	for _, c := range candidates {
		if service := chatextract.DetectService(c); service != chatextract.ServiceUnknown {
			return service
		}
	}
	return chatextract.ServiceUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
