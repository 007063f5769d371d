// Package jsonscan recovers conversations from JSON embedded in page
// scripts. It layers regex templates over inline script text to find
// candidate JSON values, then searches each parsed value for a message
// array using fixed key-paths followed by bounded recursive search.
package jsonscan

import (
	"encoding/json"
	"regexp"
	"strings"
)

// minScriptLen is the minimum script length worth scanning; shorter
// fragments cannot hold a conversation.
const minScriptLen = 50

// Candidate is one successfully parsed JSON value found in script
// content, not yet confirmed to contain a message array. Pattern
// records which template matched, for diagnostics.
type Candidate struct {
	Value   any
	Pattern string
}

// statePatterns match framework global-state assignments such as
// window.__INITIAL_STATE__ = {...};
var statePatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"initial_state", regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\});`)},
	{"nuxt_state", regexp.MustCompile(`(?s)window\.__NUXT__\s*=\s*(\{.*?\});`)},
	{"app_state", regexp.MustCompile(`(?s)window\.__APP_STATE__\s*=\s*(\{.*?\});`)},
	{"preloaded_state", regexp.MustCompile(`(?s)window\.__PRELOADED_STATE__\s*=\s*(\{.*?\});`)},
}

// directPatterns match bare JSON objects that mention conversation
// structure. They only reach one nesting level, which is enough for
// the flat payloads some services inline.
var directPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"conversation_object", regexp.MustCompile(`(?s)(\{[^{}]*"conversation"[^{}]*"messages"[^{}]*\})`)},
	{"messages_object", regexp.MustCompile(`(?s)(\{[^{}]*"messages"[^{}]*\[[^\]]*\][^{}]*\})`)},
	{"chat_object", regexp.MustCompile(`(?s)(\{[^{}]*"chat"[^{}]*"messages"[^{}]*\})`)},
}

// chunkPattern matches Next.js streaming-framework push payloads; the
// second group is the escaped chunk body.
var chunkPattern = regexp.MustCompile(`self\.__next_f\.push\(\[(\d+),"((?:[^"\\]|\\.)*)"\]\)`)

// streamPatterns are re-applied to unescaped chunk bodies to pull out
// nested conversation objects.
var streamPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"stream_conversation", regexp.MustCompile(`"conversation":\s*(\{[^{}]*"conversationId"[^{}]*\})`)},
	{"stream_share_link", regexp.MustCompile(`"shareLinkId"[^}]*"conversation":\s*(\{[^{}]*\})`)},
	{"stream_messages", regexp.MustCompile(`(\{[^{}]*"conversationId"[^{}]*"messages"[^{}]*\})`)},
}

// chunkKeywords gate which streaming chunks are worth unescaping.
var chunkKeywords = []string{"conversation", "messages", "shareLinkId"}

// chunkUnescaper reverses the JSON string escaping applied to
// streaming chunk bodies.
var chunkUnescaper = strings.NewReplacer(`\"`, `"`, `\\`, `\`)

// Scan applies the layered regex templates to each script fragment and
// returns every candidate that parses as JSON. A parse failure
// discards only that candidate; Scan itself never fails. Returns nil
// if nothing parses.
func Scan(scripts []string) []Candidate {
	var candidates []Candidate

	for _, script := range scripts {
		script = strings.TrimSpace(script)
		if len(script) < minScriptLen {
			continue
		}

		for _, p := range statePatterns {
			candidates = appendMatches(candidates, p.re, script, p.name)
		}

		candidates = append(candidates, scanChunks(script)...)

		for _, p := range directPatterns {
			candidates = appendMatches(candidates, p.re, script, p.name)
		}
	}

	return candidates
}

// scanChunks extracts candidates from streaming-framework chunk
// payloads: detect the chunk marker, unescape the embedded string, and
// re-scan the unescaped text for nested conversation objects.
func scanChunks(script string) []Candidate {
	var candidates []Candidate

	for _, match := range chunkPattern.FindAllStringSubmatch(script, -1) {
		body := match[2]
		if !containsAny(body, chunkKeywords) {
			continue
		}

		unescaped := chunkUnescaper.Replace(body)
		for _, p := range streamPatterns {
			candidates = appendMatches(candidates, p.re, unescaped, p.name)
		}
	}

	return candidates
}

// appendMatches JSON-parses every capture of re in text and appends
// the values that parse. Unparseable captures are skipped.
func appendMatches(candidates []Candidate, re *regexp.Regexp, text, pattern string) []Candidate {
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		var value any
		if err := json.Unmarshal([]byte(match[1]), &value); err != nil {
			continue
		}
		candidates = append(candidates, Candidate{Value: value, Pattern: pattern})
	}
	return candidates
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
