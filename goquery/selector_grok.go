package goquery

// grokSelectors target grok.com and x.com share pages.
func grokSelectors() SelectorSet {
	generic := genericSelectors()
	return SelectorSet{
		Containers: append([]string{
			"[class*='chat-history']",
		}, generic.Containers...),
		Messages: append([]string{
			"[class*='message-bubble']",
			"[class*='message-row']",
		}, generic.Messages...),
		User: append([]string{
			"[class*='items-end']",
		}, generic.User...),
		Assistant: append([]string{
			"[class*='items-start']",
		}, generic.Assistant...),
	}
}
