package goquery

// geminiSelectors target gemini.google.com share pages, which render
// turns as Angular custom elements.
func geminiSelectors() SelectorSet {
	generic := genericSelectors()
	return SelectorSet{
		Containers: append([]string{
			"chat-window",
			"[class*='conversation-container']",
		}, generic.Containers...),
		Messages: append([]string{
			"user-query",
			"model-response",
			"message-content",
		}, generic.Messages...),
		User: append([]string{
			"user-query",
			"[class*='user-query']",
		}, generic.User...),
		Assistant: append([]string{
			"model-response",
			"[class*='model-response']",
		}, generic.Assistant...),
	}
}
