package mcp

import (
	"context"

	"github.com/launchbay/studiopool/internal/domain/event"
	"github.com/launchbay/studiopool/internal/domain/generation"
	"github.com/launchbay/studiopool/internal/domain/lifecycle"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/slot"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateProjectInput is the MCP tool input for creating a project.
type CreateProjectInput struct {
	ID          string          `json:"id,omitempty" jsonschema:"optional project identifier, generated when omitted"`
	Name        string          `json:"name" jsonschema:"project display name"`
	Description string          `json:"description,omitempty" jsonschema:"project description"`
	Generation  int             `json:"generation,omitempty" jsonschema:"generation tag, defaults to 1"`
	Features    map[string]bool `json:"features,omitempty" jsonschema:"feature flags inherited by the workspace tenant"`
	Actor       string          `json:"actor,omitempty" jsonschema:"who triggered the creation"`
}

// OnboardProjectInput is the MCP tool input for onboarding a project.
type OnboardProjectInput struct {
	ID   string `json:"id" jsonschema:"project identifier"`
	Slot *int   `json:"slot,omitempty" jsonschema:"requested slot number 1-6, lowest free when omitted"`
}

// GraduateProjectInput is the MCP tool input for graduating a project.
type GraduateProjectInput struct {
	ID     string `json:"id" jsonschema:"project identifier"`
	Reason string `json:"reason,omitempty" jsonschema:"why the project graduates"`
}

// GetProjectInput is the MCP tool input for fetching one project.
type GetProjectInput struct {
	ID string `json:"id" jsonschema:"project identifier"`
}

// SlotBoardInput is the MCP tool input for reading the slot board.
type SlotBoardInput struct{}

// ListGenerationInput is the MCP tool input for listing one generation.
type ListGenerationInput struct {
	Generation int `json:"generation" jsonschema:"generation tag, >= 1"`
}

// ListGenerationResult wraps a generation's projects.
type ListGenerationResult struct {
	Projects []project.Project `json:"projects"`
}

// GenerationSummaryInput is the MCP tool input for the generation report.
type GenerationSummaryInput struct{}

// GenerationSummaryResult wraps the per-generation tallies.
type GenerationSummaryResult struct {
	Generations []generation.Summary `json:"generations"`
}

// RecentEventsInput is the MCP tool input for reading the event journal.
type RecentEventsInput struct {
	EntityID string `json:"entity_id,omitempty" jsonschema:"filter by project id"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of events, defaults to 50"`
}

// RecentEventsResult wraps journaled events, newest first.
type RecentEventsResult struct {
	Events []event.Event `json:"events"`
}

func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a studio project; it takes the lowest free slot directly or queues as pending when the pool is full",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input CreateProjectInput) (*sdkmcp.CallToolResult, project.Project, error) {
		proj, err := svcs.Lifecycle.Create(ctx, lifecycle.CreateRequest{
			ID:          input.ID,
			Name:        input.Name,
			Description: input.Description,
			Generation:  input.Generation,
			Features:    input.Features,
			Actor:       input.Actor,
		})
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "onboard_project",
		Description: "Move a pending project into an active slot, provisioning its workspace tenant",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input OnboardProjectInput) (*sdkmcp.CallToolResult, project.Project, error) {
		proj, err := svcs.Lifecycle.Onboard(ctx, input.ID, input.Slot)
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "graduate_project",
		Description: "Graduate an active project, freeing its slot permanently",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GraduateProjectInput) (*sdkmcp.CallToolResult, project.Project, error) {
		proj, err := svcs.Lifecycle.Graduate(ctx, input.ID, input.Reason)
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Fetch one project by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetProjectInput) (*sdkmcp.CallToolResult, project.Project, error) {
		proj, err := svcs.Lifecycle.Get(ctx, input.ID)
		if err != nil {
			return nil, project.Project{}, MapError(err)
		}
		return nil, *proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "slot_board",
		Description: "Show current slot occupancy, the pending queue, and available capacity",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ SlotBoardInput) (*sdkmcp.CallToolResult, slot.Snapshot, error) {
		snap, err := svcs.Board.Snapshot(ctx)
		if err != nil {
			return nil, slot.Snapshot{}, MapError(err)
		}
		return nil, *snap, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_generation",
		Description: "List the projects of one generation, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ListGenerationInput) (*sdkmcp.CallToolResult, ListGenerationResult, error) {
		projects, err := svcs.Generations.ByGeneration(ctx, input.Generation)
		if err != nil {
			return nil, ListGenerationResult{}, MapError(err)
		}
		return nil, ListGenerationResult{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generation_summary",
		Description: "Tally projects per generation by status",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ GenerationSummaryInput) (*sdkmcp.CallToolResult, GenerationSummaryResult, error) {
		summaries, err := svcs.Generations.Summary(ctx)
		if err != nil {
			return nil, GenerationSummaryResult{}, MapError(err)
		}
		return nil, GenerationSummaryResult{Generations: summaries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_events",
		Description: "Read the lifecycle event journal, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input RecentEventsInput) (*sdkmcp.CallToolResult, RecentEventsResult, error) {
		events, err := svcs.Events.Recent(ctx, event.ListOptions{
			EntityID: input.EntityID,
			Limit:    input.Limit,
		})
		if err != nil {
			return nil, RecentEventsResult{}, MapError(err)
		}
		return nil, RecentEventsResult{Events: events}, nil
	})
}
