package goquery

// genericSelectors are the universal selectors that work across any
// chat share page. They target common container class names and
// message markup patterns, and classify roles by class-name keywords.
func genericSelectors() SelectorSet {
	return SelectorSet{
		Containers: []string{
			"[class*='conversation']",
			"[class*='chat-container']",
			"[class*='thread']",
			"[class*='messages']",
			"main",
			"article",
			"[role='main']",
		},
		Messages: []string{
			"[class*='message']",
			"[class*='turn']",
			"[class*='bubble']",
			"[data-role]",
		},
		User: []string{
			"[class*='user']",
			"[class*='human']",
			"[data-role='user']",
		},
		Assistant: []string{
			"[class*='assistant']",
			"[class*='response']",
			"[class*='bot']",
			"[data-role='assistant']",
		},
	}
}
