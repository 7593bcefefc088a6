package command

import (
	"errors"
	"fmt"

	"github.com/vibeworks/vibe-orchestrator/internal/agentpool"
)

// ErrInvalidInput marks user input rejected before any side effect.
var ErrInvalidInput = errors.New("invalid input")

// MissingDependencyError reports a required collaborator absent from the
// Services set. It is raised at dispatch time, before any side effect.
type MissingDependencyError struct {
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing required dependency: %s", e.Dependency)
}

// SpecialistError wraps a failure from an external specialist call. It
// preserves which specialist failed at which pipeline step and the results
// of the specialists that completed before it, so callers see the partial
// progress instead of losing it.
type SpecialistError struct {
	Specialist string
	Step       int
	Completed  []*agentpool.AgentResult
	Err        error
}

func (e *SpecialistError) Error() string {
	return fmt.Sprintf("specialist %s failed at step %d: %v", e.Specialist, e.Step, e.Err)
}

func (e *SpecialistError) Unwrap() error {
	return e.Err
}
