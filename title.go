package chatextract

import "strings"

// genericTitleTerms are brand and boilerplate words that indicate a
// page title rather than a conversation title.
var genericTitleTerms = []string{
	"chatgpt", "claude", "gemini", "grok", "bard",
	"openai", "anthropic", "google", "x.com",
	"share", "shared", "conversation", "chat",
}

// MeaningfulTitle reports whether a candidate title is worth keeping:
// at least 3 characters, and short titles must not be dominated by
// service or boilerplate terms. Longer titles that merely mention a
// service name are accepted.
func MeaningfulTitle(title string) bool {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return false
	}
	if len(title) >= 50 {
		return true
	}
	lower := strings.ToLower(title)
	for _, term := range genericTitleTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}
	return true
}
