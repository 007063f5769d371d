package main

import (
	"fmt"

	"github.com/fwojciec/chatextract"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := chatextract.ConversationFilter{Limit: c.Limit}
	if c.Service != "" {
		service, err := chatextract.ParseService(c.Service)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
			return err
		}
		filter.Service = &service
	}
	if c.ByTitle {
		filter.SortBy = chatextract.SortByTitle
	}

	conversations, err := deps.Conversations.FindConversations(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
		return err
	}

	if len(conversations) == 0 {
		fmt.Fprintln(deps.Stdout, "No conversations archived. Use 'chatextract extract --save' to add one.")
		return nil
	}

	for _, conv := range conversations {
		title := conv.Title
		if title == "" {
			title = conv.URL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-8s  %s\n",
			conv.ID, conv.ExtractedAt.Format("2006-01-02"), chatextract.DisplayName(conv.Service), title)
	}

	return nil
}
