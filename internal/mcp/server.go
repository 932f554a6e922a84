package mcp

import (
	"context"
	"log/slog"

	"github.com/launchbay/studiopool/internal/domain/event"
	"github.com/launchbay/studiopool/internal/domain/generation"
	"github.com/launchbay/studiopool/internal/domain/lifecycle"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/slot"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LifecycleService defines the state machine operations needed by MCP.
type LifecycleService interface {
	Create(ctx context.Context, req lifecycle.CreateRequest) (*project.Project, error)
	Onboard(ctx context.Context, id string, requestedSlot *int) (*project.Project, error)
	Graduate(ctx context.Context, id, reason string) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
}

// BoardService defines the slot board read needed by MCP.
type BoardService interface {
	Snapshot(ctx context.Context) (*slot.Snapshot, error)
}

// GenerationService defines the reporting reads needed by MCP.
type GenerationService interface {
	ByGeneration(ctx context.Context, gen int) ([]project.Project, error)
	Summary(ctx context.Context) ([]generation.Summary, error)
}

// EventService defines the journal read needed by MCP.
type EventService interface {
	Recent(ctx context.Context, opts event.ListOptions) ([]event.Event, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Lifecycle   LifecycleService
	Board       BoardService
	Generations GenerationService
	Events      EventService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "studiopool",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}

const serverInstructions = `studiopool manages a fixed pool of six active studio slots.

Projects are created via create_project: when a slot is free the project
takes the lowest one immediately, otherwise it queues as pending.
onboard_project moves a pending project into a slot (the lowest free one
unless a specific slot is requested) and provisions its workspace
tenant. graduate_project releases a slot permanently; graduated projects
cannot re-enter the pool. Use slot_board to inspect occupancy and the
pending queue, and generation_summary / list_generation for cohort
reporting. Conflict errors indicate a concurrent change and are safe to
retry.`
