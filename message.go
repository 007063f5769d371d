package chatextract

import (
	"sort"
	"strings"
	"time"
)

// Role identifies the author of a message.
type Role string

// Roles assigned to extracted messages.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// signatureLen is the number of leading content characters that,
// together with the role, identify a message for deduplication.
const signatureLen = 100

// userRoles and assistantRoles are the fixed vocabulary used to map
// raw role strings found in page data onto Role values.
var (
	userRoles      = map[string]bool{"user": true, "human": true, "you": true}
	assistantRoles = map[string]bool{"assistant": true, "ai": true, "bot": true, "model": true, "system": true}

	// serviceRoles holds per-service aliases that also map to the
	// assistant role, keyed by the service the page belongs to.
	serviceRoles = map[Service][]string{
		ServiceChatGPT: {"chatgpt", "gpt"},
		ServiceClaude:  {"claude"},
		ServiceGemini:  {"gemini", "bard"},
		ServiceGrok:    {"grok"},
	}
)

// Message represents a single conversational turn.
type Message struct {
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Sequence  int               `json:"sequence"`
	Timestamp time.Time         `json:"timestamp,omitzero"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ParseRole maps a raw role string onto a Role using the fixed
// vocabulary plus per-service aliases. The raw string is compared
// case-insensitively. Returns false if the string is not in the
// vocabulary.
func ParseRole(raw string, service Service) (Role, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if userRoles[s] {
		return RoleUser, true
	}
	if assistantRoles[s] {
		return RoleAssistant, true
	}
	for _, alias := range serviceRoles[service] {
		if s == alias {
			return RoleAssistant, true
		}
	}
	return "", false
}

// AlternatingRole returns the role implied by 1-based sequence parity:
// odd positions are user turns, even positions are assistant turns.
func AlternatingRole(sequence int) Role {
	if sequence%2 == 1 {
		return RoleUser
	}
	return RoleAssistant
}

// Signature returns the deduplication signature for a message: its
// role plus the first 100 characters of content. Two messages with the
// same signature are considered duplicates.
func Signature(m Message) string {
	content := m.Content
	if r := []rune(content); len(r) > signatureLen {
		content = string(r[:signatureLen])
	}
	return string(m.Role) + ":" + content
}

// Dedupe removes duplicate messages by signature, keeping the first
// occurrence of each. The relative order of survivors is preserved.
func Dedupe(msgs []Message) []Message {
	seen := make(map[string]bool, len(msgs))
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		sig := Signature(m)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, m)
	}
	return out
}

// Resequence sorts messages by their existing sequence (stable) and
// renumbers them 1..N with no gaps, regardless of how many entries
// were dropped upstream.
func Resequence(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sequence < out[j].Sequence
	})
	for i := range out {
		out[i].Sequence = i + 1
	}
	return out
}

