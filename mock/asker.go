package mock

import (
	"context"

	"github.com/fwojciec/chatextract"
)

var _ chatextract.Asker = (*Asker)(nil)

// Asker is a mock implementation of chatextract.Asker.
type Asker struct {
	AskFn func(ctx context.Context, conversationID, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, conversationID, question string) (string, error) {
	return a.AskFn(ctx, conversationID, question)
}
