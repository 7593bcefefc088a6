// Package routing decides how a build plan maps onto specialist agents and
// keeps the bookkeeping the intelligence dashboard reports on: route
// metrics, token budgets and classified errors.
package routing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vibeworks/vibe-orchestrator/internal/plan"
	"github.com/vibeworks/vibe-orchestrator/internal/vibe"
)

// RoutedSpecialist is one specialist with its routing decision attached.
type RoutedSpecialist struct {
	plan.Specialist
	Reason          string `json:"reason"`
	EstimatedTokens int    `json:"estimated_tokens"`
}

// Route is the resolved execution order for one plan.
type Route struct {
	Specialists     []RoutedSpecialist `json:"specialists"`
	EstimatedTokens int                `json:"estimated_tokens"`
}

// Router derives execution routes from build plans. Routing preserves the
// plan's declared specialist order; it annotates rather than reorders, so
// pipeline execution order stays deterministic.
type Router struct {
	tracer trace.Tracer
	budget *TokenBudget
}

// NewRouter creates a router. The token budget is optional.
func NewRouter(budget *TokenBudget) *Router {
	return &Router{
		tracer: otel.Tracer("intelligent-router"),
		budget: budget,
	}
}

// tokensByComplexity is the per-specialist token estimate per complexity
// level.
var tokensByComplexity = map[vibe.Complexity]int{
	vibe.ComplexityLow:    1500,
	vibe.ComplexityMedium: 4000,
	vibe.ComplexityHigh:   9000,
}

// DetermineOptimalRoute resolves the specialist route for a plan and, when a
// budget is attached, reserves its estimated token spend under the given
// operation ID.
func (r *Router) DetermineOptimalRoute(ctx context.Context, p *plan.Plan, operationID string, complexity vibe.Complexity) (*Route, error) {
	_, span := r.tracer.Start(ctx, "router.determine_optimal_route")
	defer span.End()

	if p == nil || len(p.Specialists) == 0 {
		return nil, fmt.Errorf("plan has no specialists to route")
	}

	perSpecialist, ok := tokensByComplexity[complexity]
	if !ok {
		perSpecialist = tokensByComplexity[vibe.ComplexityMedium]
	}

	route := &Route{Specialists: make([]RoutedSpecialist, 0, len(p.Specialists))}
	for _, sp := range p.Specialists {
		route.Specialists = append(route.Specialists, RoutedSpecialist{
			Specialist:      sp,
			Reason:          routeReason(sp, p),
			EstimatedTokens: perSpecialist,
		})
		route.EstimatedTokens += perSpecialist
	}

	span.SetAttributes(
		attribute.String("operation.id", operationID),
		attribute.Int("route.specialists", len(route.Specialists)),
		attribute.Int("route.estimated_tokens", route.EstimatedTokens),
	)

	if r.budget != nil {
		r.budget.Reserve(operationID, route.EstimatedTokens)
	}

	return route, nil
}

func routeReason(sp plan.Specialist, p *plan.Plan) string {
	switch sp.AgentID {
	case "backend-specialist":
		return "features require server-side work"
	case "database-specialist":
		return "features require persistent storage"
	default:
		return fmt.Sprintf("standard %s build sequence", p.AppType)
	}
}
