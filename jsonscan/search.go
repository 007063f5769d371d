package jsonscan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/norm"
)

// maxSearchDepth bounds the recursive structural search.
const maxSearchDepth = 5

// keyPaths are tried in order before falling back to recursion. The
// first path that resolves to a plausible message array wins.
var keyPaths = [][]string{
	{"conversation", "messages"},
	{"messages"},
	{"chat", "messages"},
	{"data", "conversation", "messages"},
	{"state", "conversation", "messages"},
	{"props", "pageProps", "conversation", "messages"},
	{"turns"},
	{"entries"},
	{"conversationHistory"},
	{"history"},
}

// searchKeys are the object keys worth descending into during the
// recursive fallback, checked before general recursion.
var searchKeys = map[string]bool{
	"messages":     true,
	"conversation": true,
	"chat":         true,
	"turns":        true,
	"entries":      true,
}

// contentKeys are tried in order when reading an entry's content.
var contentKeys = []string{"content", "text", "message", "body", "prompt"}

// roleKeys are tried in order when reading an entry's role.
var roleKeys = []string{"role", "sender", "author", "type", "from"}

// entryKeys mark an object as message-shaped; at least one must be
// present for LooksLikeMessages to accept an array.
var entryKeys = []string{"content", "text", "message", "body", "role", "author", "sender"}

// Locate finds the most plausible message array inside value. Fixed
// key-paths take priority over recursive search, and recursion visits
// keys in sorted order so the result is deterministic. Returns nil
// when nothing plausible is found.
func Locate(value any) []any {
	obj, ok := value.(map[string]any)
	if ok {
		// The first path that resolves to a non-empty array wins,
		// even if a later path holds a longer one.
		for _, path := range keyPaths {
			if msgs := resolvePath(obj, path); len(msgs) > 0 {
				return msgs
			}
		}
	}

	return searchValue(value, 0)
}

// resolvePath walks a key-path through nested objects and returns the
// terminal array, or nil if any step is missing or mistyped.
func resolvePath(obj map[string]any, path []string) []any {
	cur := any(obj)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	arr, _ := cur.([]any)
	return arr
}

// searchValue is the recursive fallback: pre-order, known keys first,
// sorted key order, bounded depth.
func searchValue(value any, depth int) []any {
	if depth > maxSearchDepth {
		return nil
	}

	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if !searchKeys[strings.ToLower(k)] {
				continue
			}
			if arr, ok := v[k].([]any); ok && LooksLikeMessages(arr) {
				return arr
			}
		}
		for _, k := range keys {
			if msgs := searchValue(v[k], depth+1); msgs != nil {
				return msgs
			}
		}
	case []any:
		if LooksLikeMessages(v) {
			return v
		}
		for _, item := range v {
			if msgs := searchValue(item, depth+1); msgs != nil {
				return msgs
			}
		}
	}

	return nil
}

// LooksLikeMessages reports whether arr is plausibly a message array:
// non-empty, and each of the first three items is an object carrying
// at least one message-shaped key.
func LooksLikeMessages(arr []any) bool {
	if len(arr) == 0 {
		return false
	}

	probe := arr
	if len(probe) > 3 {
		probe = probe[:3]
	}
	for _, item := range probe {
		obj, ok := item.(map[string]any)
		if !ok {
			return false
		}
		found := false
		for _, k := range entryKeys {
			if _, present := obj[k]; present {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// EntryMessage converts one raw array entry into a Message. The bool
// result is false when the entry has no usable content. sequence is
// the 1-based position the message will take; it also drives the
// alternating-role fallback.
func EntryMessage(entry any, sequence int, service chatextract.Service, minLength int) (chatextract.Message, bool) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return chatextract.Message{}, false
	}

	content := entryContent(obj)
	content = norm.Text(content)
	if len(content) < minLength || !norm.ValidContent(content) {
		return chatextract.Message{}, false
	}

	role := entryRole(obj, sequence, service)

	return chatextract.Message{
		Role:     role,
		Content:  content,
		Sequence: sequence,
	}, true
}

// entryContent reads the first present content key, unwrapping the
// nested shapes services use: {parts: [...]}, {text: ...},
// {content: ...}, or a bare list of fragments.
func entryContent(obj map[string]any) string {
	for _, key := range contentKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if s := stringify(raw); s != "" {
			return s
		}
	}
	return ""
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		if parts, ok := v["parts"].([]any); ok {
			return joinParts(parts)
		}
		if s, ok := v["text"].(string); ok {
			return s
		}
		if inner, ok := v["content"]; ok {
			return stringify(inner)
		}
	case []any:
		return joinParts(v)
	case float64:
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func joinParts(parts []any) string {
	var sb strings.Builder
	for _, p := range parts {
		s := stringify(p)
		if s == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// entryRole reads the first recognizable role key, falling back to
// alternating parity when no key maps to a known role.
func entryRole(obj map[string]any, sequence int, service chatextract.Service) chatextract.Role {
	for _, key := range roleKeys {
		raw, ok := obj[key].(string)
		if !ok {
			continue
		}
		if role, ok := chatextract.ParseRole(raw, service); ok {
			return role
		}
	}
	return chatextract.AlternatingRole(sequence)
}

// Messages pools the message arrays found across all candidates into
// one deduplicated, contiguously numbered sequence. Entries below
// minLength are dropped without consuming a sequence number.
func Messages(candidates []Candidate, service chatextract.Service, minLength int) []chatextract.Message {
	var pooled []chatextract.Message

	for _, c := range candidates {
		arr := Locate(c.Value)
		if arr == nil {
			continue
		}
		seq := 1
		for _, entry := range arr {
			msg, ok := EntryMessage(entry, seq, service, minLength)
			if !ok {
				continue
			}
			pooled = append(pooled, msg)
			seq++
		}
	}

	if pooled == nil {
		return nil
	}
	return chatextract.Resequence(chatextract.Dedupe(pooled))
}

// titleKeys are checked when mining candidates for a conversation
// title.
var titleKeys = []string{"title", "name", "subject", "conversationTitle"}

// maxTitleDepth bounds the title search; titles sit near the top of
// state objects.
const maxTitleDepth = 3

// TitleFromCandidates returns the first meaningful title found in any
// candidate, searching shallowly in sorted key order.
func TitleFromCandidates(candidates []Candidate) string {
	for _, c := range candidates {
		if title := searchTitle(c.Value, 0); title != "" {
			return title
		}
	}
	return ""
}

func searchTitle(value any, depth int) string {
	if depth > maxTitleDepth {
		return ""
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return ""
	}

	for _, key := range titleKeys {
		if s, ok := obj[key].(string); ok {
			s = norm.Inline(s)
			if chatextract.MeaningfulTitle(s) {
				return s
			}
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if title := searchTitle(obj[k], depth+1); title != "" {
			return title
		}
	}
	return ""
}
