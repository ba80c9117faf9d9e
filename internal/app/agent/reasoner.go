package agent

import (
	"context"

	"github.com/tripflow/tripflow/internal/app/tools"
	"github.com/tripflow/tripflow/internal/core/message"
)

// Reasoner is the external reasoning-provider collaborator
// (DIP - Dependency Inversion).
//
// Reason takes the ordered message history and the available tool
// descriptors and returns exactly one ai message: either a terminal
// response or a message carrying one or more tool call requests. The
// reasoner never mutates shared state; the runner appends its output to
// the history. Output shape is the only contract - determinism is not.
type Reasoner interface {
	Reason(ctx context.Context, history []message.Message, toolSpecs []tools.Descriptor) (message.Message, error)
}
