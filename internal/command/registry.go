package command

import (
	"fmt"
	"strings"
)

// Registry maps names and aliases to commands. Registration order is
// preserved and the first registration of an alias wins.
type Registry struct {
	byTrigger map[string]Command
	order     []Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{byTrigger: make(map[string]Command)}
}

// Register adds a command under its name and every alias. Registering a
// duplicate name is an error; a duplicate alias is skipped so the earlier
// command keeps the trigger.
func (r *Registry) Register(cmd Command) error {
	name := strings.ToLower(cmd.Name())
	if _, exists := r.byTrigger[name]; exists {
		return fmt.Errorf("command %q already registered", cmd.Name())
	}

	r.byTrigger[name] = cmd
	for _, alias := range cmd.Aliases() {
		trigger := strings.ToLower(alias)
		if _, exists := r.byTrigger[trigger]; exists {
			continue
		}
		r.byTrigger[trigger] = cmd
	}

	r.order = append(r.order, cmd)
	return nil
}

// Dispatch resolves a trigger (name or alias, case-insensitive) to its
// command.
func (r *Registry) Dispatch(trigger string) (Command, bool) {
	cmd, ok := r.byTrigger[strings.ToLower(strings.TrimSpace(trigger))]
	return cmd, ok
}

// All returns the registered commands in registration order.
func (r *Registry) All() []Command {
	return r.order
}
