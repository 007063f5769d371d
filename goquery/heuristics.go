package goquery

import (
	"regexp"
	"strings"
)

// uiKeywords flag elements that belong to page chrome rather than the
// conversation, when found in a tag name or class attribute.
var uiKeywords = []string{
	"button", "nav", "menu", "toolbar", "header", "footer",
	"sidebar", "modal", "dropdown", "banner", "dialog", "tooltip",
}

// uiPhrases flag short text nodes that are interface labels.
var uiPhrases = []string{
	"copy code", "copy", "share", "regenerate", "sign in", "log in",
	"sign up", "new chat", "send a message", "terms", "privacy policy",
}

// LooksLikeUI reports whether an element is page chrome: its tag or
// class contains a UI keyword, or its text is a short interface label.
func LooksLikeUI(tag, class, text string) bool {
	tag = strings.ToLower(tag)
	class = strings.ToLower(class)
	for _, kw := range uiKeywords {
		if strings.Contains(tag, kw) || strings.Contains(class, kw) {
			return true
		}
	}

	text = strings.ToLower(strings.TrimSpace(text))
	if len(text) >= 50 {
		return false
	}
	for _, phrase := range uiPhrases {
		if text == phrase || strings.HasPrefix(text, phrase+" ") {
			return true
		}
	}
	return false
}

// requestPhrases suggest a short text is a user prompt.
var requestPhrases = []string{
	"please", "can you", "could you", "how do", "how to",
	"what is", "why", "write", "explain", "help me", "show me",
}

// LooksLikeUserMessage reports whether text reads like a user prompt:
// a question, a short imperative request, or a very short utterance.
func LooksLikeUserMessage(text string) bool {
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, "?") {
		return true
	}

	words := len(strings.Fields(text))
	if words < 20 {
		lower := strings.ToLower(text)
		for _, phrase := range requestPhrases {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}
	return words < 10
}

// helpfulPhrases suggest a text is an assistant response.
var helpfulPhrases = []string{
	"here's", "here is", "sure,", "certainly", "of course",
	"i can help", "let me", "great question",
}

var listMarkerPattern = regexp.MustCompile(`(?m)^(\s*[-*#]\s|\s*\d+\.\s)`)

// LooksLikeAssistantMessage reports whether text reads like an
// assistant response: long-form, list or heading formatting, or
// characteristic helpful phrasing.
func LooksLikeAssistantMessage(text string) bool {
	if len(strings.Fields(text)) > 100 {
		return true
	}
	if listMarkerPattern.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range helpfulPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Score is the DOM strategy's confidence: 0.3 for finding a
// container, 0.4 for finding any message elements, plus 0.05 per
// element capped at 0.3.
func Score(containerFound bool, messageCount int) float64 {
	score := 0.0
	if containerFound {
		score += 0.3
	}
	if messageCount > 0 {
		score += 0.4
	}
	per := 0.05 * float64(messageCount)
	if per > 0.3 {
		per = 0.3
	}
	score += per
	if score > 1 {
		score = 1
	}
	return score
}
