package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/norm"
	"golang.org/x/net/html"
)

// Thresholds for DOM discovery.
const (
	minContainerText = 100
	minMessageText   = 10
	minFallbackText  = 50
	maxFallbackText  = 5000
)

var _ chatextract.Strategy = (*Strategy)(nil)

// Strategy extracts conversations from rendered page markup. It
// locates a conversation container via a selector cascade, collects
// message elements within it, and infers each element's role from
// attributes, class names, and content shape.
type Strategy struct {
	// Registry resolves the selector set for a document. Nil uses a
	// default registry with the built-in detector.
	Registry *Registry

	// Service biases selector choice and role parsing. ServiceUnknown
	// lets the registry's detector decide from the HTML.
	Service chatextract.Service

	// MinLength drops messages with shorter content.
	MinLength int

	// Converter, when set, renders message markup to markdown instead
	// of using flattened text.
	Converter chatextract.Converter
}

func (s *Strategy) Name() string { return "dom" }

func (s *Strategy) registry() *Registry {
	if s.Registry != nil {
		return s.Registry
	}
	return NewRegistry(NewDetector())
}

// Confidence runs container and message discovery without building
// messages and scores what it finds.
func (s *Strategy) Confidence(doc *chatextract.Document) float64 {
	gdoc, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return 0
	}
	set, _ := s.registry().ForDocument(s.Service, doc.HTML)
	container, found := findContainer(gdoc, set)
	elems := findMessages(container, set)
	return Score(found, len(elems))
}

// Extract locates the conversation in the DOM and returns it as an
// ExtractionResult. Returns ENOTFOUND when no message elements with
// usable content are discovered.
func (s *Strategy) Extract(doc *chatextract.Document) (*chatextract.ExtractionResult, error) {
	gdoc, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return nil, chatextract.Errorf(chatextract.EINVALID, "failed to parse HTML: %v", err)
	}

	set, service := s.registry().ForDocument(s.Service, doc.HTML)
	container, found := findContainer(gdoc, set)
	elems := findMessages(container, set)

	var msgs []chatextract.Message
	seq := 1
	for _, elem := range elems {
		content := norm.Text(s.content(elem))
		if content == "" || len(content) < s.MinLength || !norm.ValidContent(content) {
			continue
		}
		msgs = append(msgs, chatextract.Message{
			Role:     s.inferRole(elem, set, service, seq, content),
			Content:  content,
			Sequence: seq,
		})
		seq++
	}

	if len(msgs) == 0 {
		return nil, chatextract.Errorf(chatextract.ENOTFOUND, "no conversation messages in page markup")
	}

	return &chatextract.ExtractionResult{
		Messages:   chatextract.Resequence(chatextract.Dedupe(msgs)),
		Title:      findTitle(gdoc),
		Method:     s.Name(),
		Confidence: Score(found, len(elems)),
	}, nil
}

// content returns an element's content, rendered as markdown when a
// converter is configured and falling back to flattened text.
func (s *Strategy) content(elem *goquery.Selection) string {
	if s.Converter != nil {
		if markup, err := elem.Html(); err == nil {
			if md, err := s.Converter.Convert(markup); err == nil {
				return md
			}
		}
	}
	return elem.Text()
}

// roleAttrs are checked, in order, for an explicit role value.
var roleAttrs = []string{"data-message-author-role", "data-role", "data-author", "role"}

// inferRole classifies a message element's author. Signals are tried
// in priority order: explicit attribute, the set's user selectors,
// the set's assistant selectors, class keywords on the element and
// its parent, content shape, and finally sequence parity. Selector
// sets mix service markers with generic class patterns and are
// matched on the element or any descendant, so a service's own
// markup deliberately outranks loose class-keyword scanning, and
// user evidence outranks assistant evidence when both are present.
func (s *Strategy) inferRole(elem *goquery.Selection, set SelectorSet, service chatextract.Service, seq int, content string) chatextract.Role {
	for _, attr := range roleAttrs {
		if v, ok := elem.Attr(attr); ok {
			if role, ok := chatextract.ParseRole(v, service); ok {
				return role
			}
		}
	}

	for _, sel := range set.User {
		if elem.Is(sel) || elem.Find(sel).Length() > 0 {
			return chatextract.RoleUser
		}
	}
	for _, sel := range set.Assistant {
		if elem.Is(sel) || elem.Find(sel).Length() > 0 {
			return chatextract.RoleAssistant
		}
	}

	if role, ok := classRole(elem.AttrOr("class", "")); ok {
		return role
	}
	if role, ok := classRole(elem.Parent().AttrOr("class", "")); ok {
		return role
	}

	if LooksLikeUserMessage(content) {
		return chatextract.RoleUser
	}
	if LooksLikeAssistantMessage(content) {
		return chatextract.RoleAssistant
	}

	return chatextract.AlternatingRole(seq)
}

var (
	userClassKeywords      = []string{"user", "human"}
	assistantClassKeywords = []string{"assistant", "response", "bot", "model", "agent"}
)

// classRole maps class-attribute keywords onto a role.
func classRole(class string) (chatextract.Role, bool) {
	class = strings.ToLower(class)
	if class == "" {
		return "", false
	}
	for _, kw := range userClassKeywords {
		if strings.Contains(class, kw) {
			return chatextract.RoleUser, true
		}
	}
	for _, kw := range assistantClassKeywords {
		if strings.Contains(class, kw) {
			return chatextract.RoleAssistant, true
		}
	}
	return "", false
}

// findContainer returns the first container selector match whose text
// exceeds the container threshold, falling back to the document body.
func findContainer(gdoc *goquery.Document, set SelectorSet) (*goquery.Selection, bool) {
	for _, selector := range set.Containers {
		sel := gdoc.Find(selector).First()
		if sel.Length() > 0 && len(strings.TrimSpace(sel.Text())) > minContainerText {
			return sel, true
		}
	}
	return gdoc.Find("body").First(), false
}

// findMessages collects message elements within the container: the
// first cascade selector whose matches all carry enough text wins;
// otherwise every element with mid-sized text that does not look like
// page chrome is taken. Nested matches are reduced to the deepest
// qualifying elements so a wrapper and its child never both count.
func findMessages(container *goquery.Selection, set SelectorSet) []*goquery.Selection {
	for _, selector := range set.Messages {
		matches := container.Find(selector)
		if matches.Length() == 0 {
			continue
		}
		all := true
		var elems []*goquery.Selection
		matches.Each(func(_ int, sel *goquery.Selection) {
			if len(strings.TrimSpace(sel.Text())) <= minMessageText {
				all = false
				return
			}
			elems = append(elems, sel)
		})
		if all {
			return deepestOnly(elems)
		}
	}

	var elems []*goquery.Selection
	container.Find("*").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "script", "style", "noscript", "head", "title":
			return
		}
		text := strings.TrimSpace(sel.Text())
		if len(text) < minFallbackText || len(text) > maxFallbackText {
			return
		}
		if LooksLikeUI(goquery.NodeName(sel), sel.AttrOr("class", ""), text) {
			return
		}
		elems = append(elems, sel)
	})
	return deepestOnly(elems)
}

// deepestOnly drops elements that contain another collected element,
// keeping only the innermost qualifying nodes.
func deepestOnly(elems []*goquery.Selection) []*goquery.Selection {
	if len(elems) < 2 {
		return elems
	}

	nodes := make([]*html.Node, len(elems))
	for i, e := range elems {
		if e.Length() > 0 {
			nodes[i] = e.Get(0)
		}
	}

	var out []*goquery.Selection
	for i, e := range elems {
		ancestor := false
		for j, other := range nodes {
			if i == j || nodes[i] == nil || other == nil {
				continue
			}
			if isAncestor(nodes[i], other) {
				ancestor = true
				break
			}
		}
		if !ancestor {
			out = append(out, e)
		}
	}
	return out
}

func isAncestor(a, b *html.Node) bool {
	for p := b.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

// titleSelectors are tried in order for a conversation title.
var titleSelectors = []string{
	"meta[property='og:title']",
	"h1",
	"[class*='conversation-title']",
	"[class*='chat-title']",
	"title",
}

// findTitle returns the first selector match whose text passes the
// meaningful-title filter.
func findTitle(gdoc *goquery.Document) string {
	for _, selector := range titleSelectors {
		sel := gdoc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := sel.AttrOr("content", "")
		if text == "" {
			text = sel.Text()
		}
		text = norm.Inline(text)
		if chatextract.MeaningfulTitle(text) {
			return text
		}
	}
	return ""
}
