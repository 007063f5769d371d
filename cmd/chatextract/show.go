package main

import (
	"fmt"

	"github.com/fwojciec/chatextract"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	if c.Styles != "" {
		styles, err := cfg.Styles.ApplyOverrides(c.Styles)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
			return err
		}
		cfg.Styles = styles
	}

	conv, err := deps.Conversations.FindConversationByID(deps.Ctx, c.ID)
	if err != nil {
		if chatextract.ErrorCode(err) == chatextract.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: conversation %q not found. Use 'chatextract list' to see archived conversations.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, chatextract.FormatConversation(conv, cfg))
	return nil
}
