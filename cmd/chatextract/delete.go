package main

import (
	"fmt"

	"github.com/fwojciec/chatextract"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return chatextract.Errorf(chatextract.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Conversations.DeleteConversation(deps.Ctx, c.ID); err != nil {
		if chatextract.ErrorCode(err) == chatextract.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: conversation %q not found. Use 'chatextract list' to see archived conversations.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted conversation %q\n", c.ID)
	return nil
}
