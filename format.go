package chatextract

import (
	"fmt"
	"strings"
)

// displayNames maps services to the sender labels used in rendered
// output (and as color keys in the config).
var displayNames = map[Service]string{
	ServiceGrok:    "Grok",
	ServiceChatGPT: "ChatGPT",
	ServiceGemini:  "Gemini",
	ServiceClaude:  "Claude",
}

// DisplayName returns the human-facing name of a service.
func DisplayName(service Service) string {
	if name, ok := displayNames[service]; ok {
		return name
	}
	return "assistant"
}

// FormatConversation renders a conversation as an Obsidian chat-view
// Markdown document: an optional metadata header followed by a
// ```chat block with style lines, color lines, and one line per
// message.
func FormatConversation(conv *Conversation, cfg Config) string {
	var lines []string

	if cfg.Output.IncludeMetadata {
		lines = append(lines, formatMetadata(conv, cfg)...)
		lines = append(lines, "")
	}

	lines = append(lines, "```chat")
	lines = append(lines, fmt.Sprintf("mw=%d", cfg.Styles.MaxWidth))

	for _, role := range []string{"user", DisplayName(conv.Service), "system"} {
		if color, ok := cfg.Colors[role]; ok {
			lines = append(lines, role+"="+color)
		}
	}

	for _, msg := range conv.Messages {
		if line := formatMessage(msg, conv.Service, cfg.Styles); line != "" {
			lines = append(lines, line)
		}
	}

	if cfg.Output.AddExtractionLog {
		lines = append(lines, formatExtractionLog(conv)...)
	}

	lines = append(lines, "```")

	return strings.Join(lines, "\n")
}

func formatMetadata(conv *Conversation, cfg Config) []string {
	var lines []string

	if conv.Title != "" {
		lines = append(lines, headerPrefix(cfg.Styles.Header)+" "+conv.Title)
	}
	if cfg.Output.IncludeSourceURL && conv.URL != "" {
		lines = append(lines, "**Source:** "+conv.URL)
	}
	lines = append(lines, "**Service:** "+DisplayName(conv.Service))
	lines = append(lines, "**Extracted:** "+conv.ExtractedAt.Format("2006-01-02 15:04:05"))
	lines = append(lines, fmt.Sprintf("**Messages:** %d", len(conv.Messages)))

	return lines
}

// headerPrefix converts an "hN" style into N markdown hash marks,
// defaulting to h3.
func headerPrefix(header string) string {
	if len(header) == 2 && header[0] == 'h' && header[1] >= '1' && header[1] <= '6' {
		return strings.Repeat("#", int(header[1]-'0'))
	}
	return "###"
}

func formatMessage(msg Message, service Service, styles Styles) string {
	content := strings.Join(strings.Fields(msg.Content), " ")
	if content == "" {
		return ""
	}

	var sender string
	switch msg.Role {
	case RoleUser:
		sender = "user"
	case RoleAssistant:
		sender = DisplayName(service)
	default:
		sender = "system"
	}

	var subtext []string
	if styles.ShowTimestamps && !msg.Timestamp.IsZero() {
		subtext = append(subtext, msg.Timestamp.Format("15:04:05"))
	}
	if styles.ShowSequence && msg.Sequence > 0 {
		subtext = append(subtext, fmt.Sprintf("#%d", msg.Sequence))
	}

	if len(subtext) > 0 {
		return fmt.Sprintf("< %s | %s | %s", sender, content, strings.Join(subtext, " | "))
	}
	return fmt.Sprintf("< %s | %s", sender, content)
}

func formatExtractionLog(conv *Conversation) []string {
	return []string{
		"",
		"# Extraction Log",
		"# Extracted from: " + conv.URL,
		"# Service: " + string(conv.Service),
		"# Method: " + conv.Method,
		fmt.Sprintf("# Confidence: %.2f", conv.Confidence),
		"# Timestamp: " + conv.ExtractedAt.Format("2006-01-02 15:04:05"),
		fmt.Sprintf("# Total messages: %d", len(conv.Messages)),
		fmt.Sprintf("# User messages: %d", len(conv.UserMessages())),
		fmt.Sprintf("# Assistant messages: %d", len(conv.AssistantMessages())),
	}
}
