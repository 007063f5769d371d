package goquery

// claudeSelectors target claude.ai share pages, which mark user turns
// with a data-testid and assistant turns with a font class.
func claudeSelectors() SelectorSet {
	generic := genericSelectors()
	return SelectorSet{
		Containers: append([]string{
			"[data-testid='conversation']",
			".conversation-container",
		}, generic.Containers...),
		Messages: append([]string{
			"[data-testid='user-message']",
			".font-claude-message",
			"[data-test-render-count]",
		}, generic.Messages...),
		User: append([]string{
			"[data-testid='user-message']",
			".font-user-message",
		}, generic.User...),
		Assistant: append([]string{
			".font-claude-message",
		}, generic.Assistant...),
	}
}
