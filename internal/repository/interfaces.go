package repository

import (
	"context"

	"github.com/launchbay/studiopool/internal/domain/event"
	"github.com/launchbay/studiopool/internal/domain/generation"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/tenant"
)

// ProjectRepository manages project persistence. Activate, Update, and
// CreateActive are the atomic read-modify-write primitives the state
// machine relies on: each runs in a single store transaction and fails
// with ErrConflict when the record's version is stale or a slot/slug
// constraint would be violated.
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	// CreateActive inserts a directly-active project together with its
	// provisioned tenant in one transaction.
	CreateActive(ctx context.Context, proj *project.Project, ten *tenant.Tenant) error
	Get(ctx context.Context, id string) (*project.Project, error)
	// Update writes the project if its stored version equals
	// expectedVersion, bumping the version.
	Update(ctx context.Context, proj *project.Project, expectedVersion int64) error
	// Activate writes the activated project and inserts its tenant in
	// one transaction guarded by expectedVersion.
	Activate(ctx context.Context, proj *project.Project, expectedVersion int64, ten *tenant.Tenant) error
	ListActive(ctx context.Context, category string) ([]project.Project, error)
	ListPending(ctx context.Context, category string) ([]project.Project, error)
	ListByGeneration(ctx context.Context, category string, gen int) ([]project.Project, error)
	GenerationSummary(ctx context.Context, category string) ([]generation.Summary, error)
}

// TenantRepository manages tenant persistence
type TenantRepository interface {
	Get(ctx context.Context, id string) (*tenant.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByProject(ctx context.Context, projectID string) ([]tenant.Tenant, error)
}

// EventRepository manages the event journal
type EventRepository interface {
	Append(ctx context.Context, evt *event.Event) error
	List(ctx context.Context, opts event.ListOptions) ([]event.Event, error)
}
