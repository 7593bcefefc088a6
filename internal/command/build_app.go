package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vibeworks/vibe-orchestrator/internal/agentpool"
	"github.com/vibeworks/vibe-orchestrator/internal/plan"
	"github.com/vibeworks/vibe-orchestrator/internal/progress"
	"github.com/vibeworks/vibe-orchestrator/internal/routing"
	"github.com/vibeworks/vibe-orchestrator/internal/vibe"
)

// buildBaseSteps counts the fixed pipeline steps around the specialist loop:
// analyze, plan, route, integrate. Total steps derive from the specialist
// count, so the progress bar stays accurate for 4, 5 or 6 specialists.
const buildBaseSteps = 4

// BuildAppCommand turns one free-text vibe into a built application by
// classifying it, planning the build, and dispatching the planned
// specialists strictly in order through the agent pool.
type BuildAppCommand struct{}

// NewBuildAppCommand creates the build command.
func NewBuildAppCommand() *BuildAppCommand {
	return &BuildAppCommand{}
}

func (c *BuildAppCommand) Name() string { return "build-app" }

func (c *BuildAppCommand) Description() string {
	return "Turn a free-text vibe into a planned, specialist-built application"
}

func (c *BuildAppCommand) Aliases() []string {
	return []string{"build", "create", "make", "vibe"}
}

// Execute runs the linear build pipeline. Validation happens before the
// operation starts; any later failure fails the tracked operation and is
// re-raised to the caller.
func (c *BuildAppCommand) Execute(ctx context.Context, userInput string, execCtx *Context, services *Services) (*Result, error) {
	if execCtx == nil {
		execCtx = &Context{}
	}
	if strings.TrimSpace(userInput) == "" {
		services.recordError(routing.ErrorKindValidation)
		return nil, fmt.Errorf("%w: empty vibe description", ErrInvalidInput)
	}
	if err := services.require("agentPool", "progressTracker", "router"); err != nil {
		services.recordError(routing.ErrorKindMissingDependency)
		return nil, err
	}

	operationID := execCtx.OperationID
	if operationID == "" {
		operationID = uuid.New().String()
	}
	if execCtx.UserID != "" {
		ctx = progress.WithUserID(ctx, execCtx.UserID)
	}

	analysis := vibe.Analyze(userInput)
	appPlan := plan.Build(analysis)
	totalSteps := buildBaseSteps + len(appPlan.Specialists)

	services.Progress.StartOperation(ctx, operationID, progress.OperationInfo{
		Name:        c.Name(),
		Description: userInput,
		TotalSteps:  totalSteps,
	})

	result, err := c.run(ctx, operationID, userInput, analysis, appPlan, services)
	if err != nil {
		services.Progress.FailOperation(ctx, operationID, err)
		var specialistErr *SpecialistError
		if errors.As(err, &specialistErr) {
			services.recordError(routing.ErrorKindSpecialist)
		} else {
			services.recordError(routing.ErrorKindInternal)
		}
		return nil, err
	}

	services.Progress.CompleteOperation(ctx, operationID,
		fmt.Sprintf("%s built with %d specialists", analysis.AppType, len(appPlan.Specialists)))

	return result, nil
}

// run walks the pipeline steps, dispatching each routed specialist
// sequentially so execution order matches the declared specialist order.
func (c *BuildAppCommand) run(ctx context.Context, operationID, userInput string, analysis vibe.Analysis, appPlan *plan.Plan, services *Services) (*Result, error) {
	totalSteps := buildBaseSteps + len(appPlan.Specialists)

	services.Progress.UpdateProgress(ctx, operationID, 1, fmt.Sprintf("Analyzing vibe: %s", analysis.AppType))
	services.Progress.UpdateProgress(ctx, operationID, 2, fmt.Sprintf("Planning %s application", analysis.AppType))

	services.Progress.UpdateProgress(ctx, operationID, 3, "Routing to specialists")
	route, err := services.Router.DetermineOptimalRoute(ctx, appPlan, operationID, analysis.Complexity)
	if err != nil {
		return nil, fmt.Errorf("failed to route plan: %w", err)
	}

	var completed []*agentpool.AgentResult
	for i, specialist := range route.Specialists {
		step := buildBaseSteps + i
		services.Progress.UpdateProgress(ctx, operationID, step, fmt.Sprintf("Executing %s", specialist.Name))

		agentResult, execErr := services.AgentPool.ExecuteWithAgent(ctx, specialist.AgentID, agentpool.AgentCommand{
			Type:         specialist.Task,
			Input:        userInput,
			Requirements: specialist.Requirements,
			OperationID:  operationID,
		})

		if services.RoutingMetrics != nil {
			services.RoutingMetrics.RecordRoute(specialist.AgentID, execErr == nil)
		}

		if execErr != nil {
			// Abort the remaining pipeline but hand back the completed
			// prefix so callers see the partial progress.
			return nil, &SpecialistError{
				Specialist: specialist.AgentID,
				Step:       step,
				Completed:  completed,
				Err:        execErr,
			}
		}

		if services.TokenBudget != nil {
			services.TokenBudget.Consume(operationID, specialist.EstimatedTokens)
		}

		completed = append(completed, agentResult)
	}

	services.Progress.UpdateProgress(ctx, operationID, totalSteps, "Integrating specialist results")

	return c.integrate(operationID, analysis, appPlan, completed), nil
}

// integrate assembles the final result, indexing specialist outputs by their
// stable agent identifier.
func (c *BuildAppCommand) integrate(operationID string, analysis vibe.Analysis, appPlan *plan.Plan, results []*agentpool.AgentResult) *Result {
	byAgent := make(map[string]*agentpool.AgentResult, len(results))
	summaries := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		byAgent[r.Agent] = r
		summaries = append(summaries, map[string]interface{}{
			"agent":          r.Agent,
			"success":        r.Success,
			"execution_time": r.ExecutionTime,
		})
	}

	data := map[string]interface{}{
		"operation_id": operationID,
		"app_type":     analysis.AppType,
		"features":     analysis.Features,
		"complexity":   analysis.Complexity,
		"style":        analysis.Style,
		"tech_stack":   appPlan.TechStack,
		"timeline":     appPlan.Timeline,
		"architecture": appPlan.Architecture,
		"specialists":  summaries,
	}

	if deployment, ok := byAgent["deployment-specialist"]; ok && deployment.Result != nil {
		data["deployment"] = deployment.Result
	}
	if frontend, ok := byAgent["frontend-specialist"]; ok && frontend.Result != nil {
		data["interface"] = frontend.Result
	}

	message := fmt.Sprintf("Built %s with %s", analysis.AppType, strings.Join(analysis.Features, ", "))
	return NewResult(StatusSuccess, message, data)
}
