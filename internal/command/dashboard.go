package command

import (
	"context"
)

// IntelligenceDashboardCommand aggregates the routing intelligence views
// into one snapshot. Every collaborator it reads is optional: a missing one
// is replaced by a placeholder section instead of failing the command, so
// the dashboard renders in partially wired deployments.
type IntelligenceDashboardCommand struct{}

// NewIntelligenceDashboardCommand creates the dashboard command.
func NewIntelligenceDashboardCommand() *IntelligenceDashboardCommand {
	return &IntelligenceDashboardCommand{}
}

func (c *IntelligenceDashboardCommand) Name() string { return "intelligence-dashboard" }

func (c *IntelligenceDashboardCommand) Description() string {
	return "Show routing, token budget and failure summaries"
}

func (c *IntelligenceDashboardCommand) Aliases() []string {
	return []string{"dashboard", "intelligence", "insights"}
}

// Execute never errors: absent collaborators degrade to placeholders.
func (c *IntelligenceDashboardCommand) Execute(ctx context.Context, userInput string, execCtx *Context, services *Services) (*Result, error) {
	routingSection := placeholderSection("routing metrics not wired")
	budgetSection := placeholderSection("token budget not wired")
	errorSection := placeholderSection("error log not wired")

	if services != nil {
		if services.RoutingMetrics != nil {
			routingSection = services.RoutingMetrics.Summary()
		}
		if services.TokenBudget != nil {
			budgetSection = services.TokenBudget.Summary()
		}
		if services.ErrorLog != nil {
			errorSection = services.ErrorLog.Summary()
		}
	}

	return NewResult(StatusSuccess, "Intelligence dashboard", map[string]interface{}{
		"routing":      routingSection,
		"token_budget": budgetSection,
		"errors":       errorSection,
	}), nil
}

func placeholderSection(note string) map[string]interface{} {
	return map[string]interface{}{
		"available": false,
		"note":      note,
	}
}
