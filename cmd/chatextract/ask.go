package main

import (
	"fmt"

	"github.com/fwojciec/chatextract"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.ID, c.Question)
	if err != nil {
		if chatextract.ErrorCode(err) == chatextract.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: conversation %q not found. Use 'chatextract list' to see archived conversations.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", chatextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
