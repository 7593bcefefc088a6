package command

import (
	"context"
	"fmt"

	"github.com/vibeworks/vibe-orchestrator/internal/routing"
)

// ShowProgressCommand reports the live view of tracked operations: what is
// running now, what finished most recently, and the aggregate counters.
type ShowProgressCommand struct{}

// NewShowProgressCommand creates the progress command.
func NewShowProgressCommand() *ShowProgressCommand {
	return &ShowProgressCommand{}
}

func (c *ShowProgressCommand) Name() string { return "show-progress" }

func (c *ShowProgressCommand) Description() string {
	return "Show active operations, recent completions and aggregate stats"
}

func (c *ShowProgressCommand) Aliases() []string {
	return []string{"progress", "status", "operations"}
}

// Execute is read-only: it never starts an operation of its own.
func (c *ShowProgressCommand) Execute(ctx context.Context, userInput string, execCtx *Context, services *Services) (*Result, error) {
	if err := services.require("progressTracker"); err != nil {
		services.recordError(routing.ErrorKindMissingDependency)
		return nil, err
	}

	active := services.Progress.ActiveOperations()
	recent := services.Progress.CompletedOperations(5)
	stats := services.Progress.GetStats()

	message := fmt.Sprintf("%d active operations, %d recently finished", len(active), len(recent))
	if len(active) == 0 && len(recent) == 0 {
		message = "No operations tracked yet"
	}

	return NewResult(StatusSuccess, message, map[string]interface{}{
		"active": active,
		"recent": recent,
		"stats":  stats,
	}), nil
}
