package goquery

// chatgptSelectors target ChatGPT share pages. Validated against the
// chatgpt.com /share layout, which tags every turn with a
// data-message-author-role attribute.
func chatgptSelectors() SelectorSet {
	generic := genericSelectors()
	return SelectorSet{
		Containers: append([]string{
			"[data-testid='conversation-main']",
			"main [class*='thread']",
		}, generic.Containers...),
		Messages: append([]string{
			"[data-message-author-role]",
			"[data-testid^='conversation-turn']",
			".text-message",
		}, generic.Messages...),
		User: append([]string{
			"[data-message-author-role='user']",
		}, generic.User...),
		Assistant: append([]string{
			"[data-message-author-role='assistant']",
			".agent-turn",
		}, generic.Assistant...),
	}
}
