package goquery

import "github.com/fwojciec/chatextract"

// SelectorSet lists the CSS selectors tried when locating a
// conversation in the DOM, in cascade order. User and Assistant are
// matched against individual message nodes to classify the author.
type SelectorSet struct {
	Containers []string
	Messages   []string
	User       []string
	Assistant  []string
}

// Registry maps services to their selector sets and auto-detects the
// service from HTML content. It falls back to generic selectors when
// the service is unknown or has no specific set registered.
type Registry struct {
	detector chatextract.ServiceDetector
	fallback SelectorSet
	sets     map[chatextract.Service]SelectorSet
}

// NewRegistry creates a Registry with the given detector, pre-loaded
// with the selector sets for all known services and the generic
// fallback.
func NewRegistry(detector chatextract.ServiceDetector) *Registry {
	r := &Registry{
		detector: detector,
		fallback: genericSelectors(),
		sets:     make(map[chatextract.Service]SelectorSet),
	}
	r.Register(chatextract.ServiceChatGPT, chatgptSelectors())
	r.Register(chatextract.ServiceClaude, claudeSelectors())
	r.Register(chatextract.ServiceGemini, geminiSelectors())
	r.Register(chatextract.ServiceGrok, grokSelectors())
	return r
}

// Register adds a selector set for a service.
// If a set is already registered for the service, it is replaced.
func (r *Registry) Register(service chatextract.Service, set SelectorSet) {
	r.sets[service] = set
}

// Get returns the selector set for a specific service.
// The second return value is false if none is registered.
func (r *Registry) Get(service chatextract.Service) (SelectorSet, bool) {
	set, ok := r.sets[service]
	return set, ok
}

// ForDocument returns the selector set to use for a document. A known
// service wins; otherwise the service is detected from the HTML. The
// generic fallback is returned when neither identifies the service.
// The resolved service is returned alongside the set.
func (r *Registry) ForDocument(service chatextract.Service, html string) (SelectorSet, chatextract.Service) {
	if service == chatextract.ServiceUnknown && r.detector != nil {
		service = r.detector.Detect(html)
	}
	if set, ok := r.sets[service]; ok {
		return set, service
	}
	return r.fallback, service
}
