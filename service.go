package chatextract

import (
	"net/url"
	"regexp"
	"strings"
)

// Service identifies the AI chat service a page belongs to.
type Service string

// Supported services.
const (
	ServiceUnknown Service = ""
	ServiceGrok    Service = "grok"
	ServiceChatGPT Service = "chatgpt"
	ServiceGemini  Service = "gemini"
	ServiceClaude  Service = "claude"
)

// Services returns all known services in a stable order.
func Services() []Service {
	return []Service{ServiceGrok, ServiceChatGPT, ServiceGemini, ServiceClaude}
}

// ParseService maps a user-supplied service name onto a Service.
// Returns EINVALID for unrecognized names.
func ParseService(name string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grok":
		return ServiceGrok, nil
	case "chatgpt", "gpt", "openai":
		return ServiceChatGPT, nil
	case "gemini", "bard":
		return ServiceGemini, nil
	case "claude", "anthropic":
		return ServiceClaude, nil
	}
	return ServiceUnknown, Errorf(EINVALID, "unknown service %q", name)
}

// LinkType classifies a service URL.
type LinkType string

// Link types recognized by AnalyzeURL.
const (
	LinkShared  LinkType = "shared_conversation"
	LinkRegular LinkType = "regular_chat"
	LinkUnknown LinkType = "unknown"
)

// URLInfo is the result of analyzing a service URL.
type URLInfo struct {
	Service    Service
	LinkType   LinkType
	Confidence float64
}

// servicePatterns match the host (and optionally leading path) of each
// service's domains.
var servicePatterns = map[Service][]*regexp.Regexp{
	ServiceGrok: {
		regexp.MustCompile(`grok\.x\.com`),
		regexp.MustCompile(`x\.com/i?/?grok`),
		regexp.MustCompile(`grok\.com`),
	},
	ServiceChatGPT: {
		regexp.MustCompile(`chat\.openai\.com`),
		regexp.MustCompile(`chatgpt\.com`),
	},
	ServiceGemini: {
		regexp.MustCompile(`gemini\.google\.com`),
		regexp.MustCompile(`bard\.google\.com`),
		regexp.MustCompile(`g\.co/gemini`),
	},
	ServiceClaude: {
		regexp.MustCompile(`claude\.ai`),
		regexp.MustCompile(`anthropic\.com/claude`),
	},
}

// sharedLinkPatterns match the path of public share links.
var sharedLinkPatterns = map[Service][]*regexp.Regexp{
	ServiceGrok: {
		regexp.MustCompile(`/share/[A-Za-z0-9_-]+`),
		regexp.MustCompile(`/grok/share/[A-Za-z0-9_-]+`),
		regexp.MustCompile(`/conversation/[a-f0-9-]+`),
	},
	ServiceChatGPT: {
		regexp.MustCompile(`/share/[a-f0-9-]+`),
		regexp.MustCompile(`/c/[a-f0-9-]+`),
		regexp.MustCompile(`/chat/[a-f0-9-]+`),
	},
	ServiceGemini: {
		regexp.MustCompile(`/share/[a-f0-9-]+`),
		regexp.MustCompile(`/conversation/[a-f0-9-]+`),
	},
	ServiceClaude: {
		regexp.MustCompile(`/share/[a-f0-9-]+`),
		regexp.MustCompile(`/chat/[a-f0-9-]+`),
	},
}

// regularChatPatterns match logged-in chat interfaces, which typically
// require authentication and are poor extraction targets.
var regularChatPatterns = map[Service][]*regexp.Regexp{
	ServiceGrok: {
		regexp.MustCompile(`/grok/?$`),
		regexp.MustCompile(`/grok\?`),
	},
	ServiceChatGPT: {
		regexp.MustCompile(`/chat/?$`),
		regexp.MustCompile(`/chat\?`),
		regexp.MustCompile(`^/$`),
	},
	ServiceGemini: {
		regexp.MustCompile(`/app/?$`),
		regexp.MustCompile(`/app\?`),
		regexp.MustCompile(`^/$`),
	},
	ServiceClaude: {
		regexp.MustCompile(`/chat/?$`),
		regexp.MustCompile(`/chat\?`),
		regexp.MustCompile(`^/$`),
	},
}

var hexIDPattern = regexp.MustCompile(`/[a-f0-9]{8,}`)

// DetectService identifies the AI service a URL belongs to. Returns
// ServiceUnknown if the URL matches no known service domain.
func DetectService(rawURL string) Service {
	return AnalyzeURL(rawURL).Service
}

// AnalyzeURL identifies the service and link type of a URL.
// Unrecognized URLs yield {ServiceUnknown, LinkUnknown, 0}.
func AnalyzeURL(rawURL string) URLInfo {
	u, err := url.Parse(strings.ToLower(strings.TrimSpace(rawURL)))
	if err != nil {
		return URLInfo{LinkType: LinkUnknown}
	}

	target := u.Host + u.Path

	var service Service
	for _, svc := range Services() {
		for _, pat := range servicePatterns[svc] {
			if pat.MatchString(target) {
				service = svc
				break
			}
		}
		if service != ServiceUnknown {
			break
		}
	}
	if service == ServiceUnknown {
		return URLInfo{LinkType: LinkUnknown}
	}

	linkType, confidence := classifyPath(service, u.Path)
	return URLInfo{Service: service, LinkType: linkType, Confidence: confidence}
}

// classifyPath determines whether a path is a shared conversation or a
// regular chat interface. Shared links match first; otherwise a long
// hex ID in the path is a strong shared-link hint and a bare root path
// suggests the regular interface.
func classifyPath(service Service, path string) (LinkType, float64) {
	for _, pat := range sharedLinkPatterns[service] {
		if pat.MatchString(path) {
			return LinkShared, 0.9
		}
	}
	for _, pat := range regularChatPatterns[service] {
		if pat.MatchString(path) {
			return LinkRegular, 0.8
		}
	}
	if hexIDPattern.MatchString(path) {
		return LinkShared, 0.6
	}
	if strings.Trim(path, "/") == "" {
		return LinkRegular, 0.5
	}
	return LinkUnknown, 0.3
}

// ServiceDetector identifies the AI service from page HTML, used when
// the URL alone is not conclusive (e.g., local files).
type ServiceDetector interface {
	// Detect analyzes HTML and returns the identified service.
	// Returns ServiceUnknown if the service cannot be determined.
	Detect(html string) Service
}
