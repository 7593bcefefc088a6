package plan

import (
	"fmt"

	"github.com/vibeworks/vibe-orchestrator/internal/vibe"
)

// Specialist describes an external agent role required by a build. The
// orchestrator never executes specialists itself; it dispatches them through
// the agent pool and keys integration on AgentID.
type Specialist struct {
	AgentID      string   `json:"agent_id"`
	Name         string   `json:"name"`
	Task         string   `json:"task"`
	Requirements []string `json:"requirements,omitempty"`
}

// TechStack is the recommended technology selection for a plan.
type TechStack struct {
	Frontend string `json:"frontend"`
	Backend  string `json:"backend"`
	Database string `json:"database"`
	Hosting  string `json:"hosting"`
}

// Plan is the build plan derived from one vibe analysis. It exists only for
// the duration of a single build operation.
type Plan struct {
	AppType      vibe.AppType `json:"app_type"`
	Features     []string     `json:"features"`
	Specialists  []Specialist `json:"specialists"`
	TechStack    TechStack    `json:"tech_stack"`
	Timeline     string       `json:"timeline"`
	Architecture string       `json:"architecture"`
}

// Build derives a complete application plan from a vibe analysis.
func Build(analysis vibe.Analysis) *Plan {
	specialists := DetermineSpecialists(analysis)
	return &Plan{
		AppType:      analysis.AppType,
		Features:     analysis.Features,
		Specialists:  specialists,
		TechStack:    recommendStack(analysis),
		Timeline:     estimateTimeline(analysis.Complexity, len(specialists)),
		Architecture: describeArchitecture(analysis),
	}
}

// DetermineSpecialists selects the specialist sequence for an analysis.
// Project manager and frontend always lead, backend and database join
// conditionally on the extracted features, and testing plus deployment
// always close the sequence. The order is deterministic and the result
// always holds 4 to 6 entries.
func DetermineSpecialists(analysis vibe.Analysis) []Specialist {
	specialists := []Specialist{
		{
			AgentID: "project-manager",
			Name:    "Project Manager",
			Task:    "coordinate-build",
			Requirements: []string{
				fmt.Sprintf("app-type:%s", analysis.AppType),
				fmt.Sprintf("complexity:%s", analysis.Complexity),
			},
		},
		{
			AgentID:      "frontend-specialist",
			Name:         "Frontend Specialist",
			Task:         "build-interface",
			Requirements: append([]string{fmt.Sprintf("style:%s", analysis.Style)}, analysis.Features...),
		},
	}

	if hasFeature(analysis.Features, vibe.FeatureAPIBackend) || hasFeature(analysis.Features, vibe.FeatureUserAuth) {
		specialists = append(specialists, Specialist{
			AgentID:      "backend-specialist",
			Name:         "Backend Specialist",
			Task:         "build-api",
			Requirements: analysis.Features,
		})
	}

	if hasFeature(analysis.Features, vibe.FeatureStorage) {
		specialists = append(specialists, Specialist{
			AgentID:      "database-specialist",
			Name:         "Database Specialist",
			Task:         "design-schema",
			Requirements: []string{vibe.FeatureStorage},
		})
	}

	specialists = append(specialists,
		Specialist{
			AgentID: "testing-specialist",
			Name:    "Testing Specialist",
			Task:    "verify-build",
		},
		Specialist{
			AgentID: "deployment-specialist",
			Name:    "Deployment Specialist",
			Task:    "deploy-app",
		},
	)

	return specialists
}

// stackByAppType holds the per-app-type stack recommendations. Complexity
// only upgrades the hosting tier.
var stackByAppType = map[vibe.AppType]TechStack{
	vibe.AppTypeTodo:      {Frontend: "React", Backend: "Node.js", Database: "SQLite", Hosting: "static"},
	vibe.AppTypeBlog:      {Frontend: "Next.js", Backend: "Node.js", Database: "PostgreSQL", Hosting: "static"},
	vibe.AppTypeEcommerce: {Frontend: "Next.js", Backend: "Node.js", Database: "PostgreSQL", Hosting: "managed"},
	vibe.AppTypeChat:      {Frontend: "React", Backend: "Node.js", Database: "Redis", Hosting: "managed"},
	vibe.AppTypeDashboard: {Frontend: "React", Backend: "Node.js", Database: "PostgreSQL", Hosting: "managed"},
	vibe.AppTypePortfolio: {Frontend: "Astro", Backend: "none", Database: "none", Hosting: "static"},
	vibe.AppTypeGeneral:   {Frontend: "React", Backend: "Node.js", Database: "SQLite", Hosting: "static"},
}

func recommendStack(analysis vibe.Analysis) TechStack {
	stack := stackByAppType[analysis.AppType]
	if analysis.Complexity == vibe.ComplexityHigh {
		stack.Hosting = "dedicated"
	}
	return stack
}

func estimateTimeline(complexity vibe.Complexity, specialistCount int) string {
	switch complexity {
	case vibe.ComplexityLow:
		return "1-2 days"
	case vibe.ComplexityHigh:
		if specialistCount > 5 {
			return "2-3 weeks"
		}
		return "1-2 weeks"
	default:
		return "3-5 days"
	}
}

func describeArchitecture(analysis vibe.Analysis) string {
	if hasFeature(analysis.Features, vibe.FeatureAPIBackend) || hasFeature(analysis.Features, vibe.FeatureStorage) {
		return fmt.Sprintf("client-server %s with persistent backend", analysis.AppType)
	}
	if hasFeature(analysis.Features, vibe.FeatureRealtime) {
		return fmt.Sprintf("event-driven %s with websocket transport", analysis.AppType)
	}
	return fmt.Sprintf("single-page %s", analysis.AppType)
}

func hasFeature(features []string, tag string) bool {
	for _, f := range features {
		if f == tag {
			return true
		}
	}
	return false
}
