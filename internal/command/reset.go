package command

import (
	"context"

	"github.com/vibeworks/vibe-orchestrator/internal/routing"
)

// ResetContextCommand discards accumulated session state so the next vibe
// starts from a clean slate.
type ResetContextCommand struct{}

// NewResetContextCommand creates the reset command.
func NewResetContextCommand() *ResetContextCommand {
	return &ResetContextCommand{}
}

func (c *ResetContextCommand) Name() string { return "reset-context" }

func (c *ResetContextCommand) Description() string {
	return "Discard accumulated session state"
}

func (c *ResetContextCommand) Aliases() []string {
	return []string{"reset", "clear", "start-over"}
}

func (c *ResetContextCommand) Execute(ctx context.Context, userInput string, execCtx *Context, services *Services) (*Result, error) {
	if err := services.require("contextManager"); err != nil {
		services.recordError(routing.ErrorKindMissingDependency)
		return nil, err
	}

	services.ContextManager.Reset()

	return NewResult(StatusSuccess, "Session context cleared", nil), nil
}
