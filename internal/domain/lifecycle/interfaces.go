package lifecycle

import (
	"context"

	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/slot"
	"github.com/launchbay/studiopool/internal/domain/tenant"
)

// ProjectRepository provides the project writes the state machine
// performs. CreateActive, Update, and Activate are single-transaction
// primitives: a stale version or a violated slot/slug constraint rolls
// the whole write back with repository.ErrConflict.
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	CreateActive(ctx context.Context, proj *project.Project, ten *tenant.Tenant) error
	Get(ctx context.Context, id string) (*project.Project, error)
	Update(ctx context.Context, proj *project.Project, expectedVersion int64) error
	Activate(ctx context.Context, proj *project.Project, expectedVersion int64, ten *tenant.Tenant) error
}

// SnapshotSource supplies the current slot board.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*slot.Snapshot, error)
}

// Provisioner builds the dependent tenant record for an activation.
type Provisioner interface {
	Provision(ctx context.Context, req tenant.ProvisionRequest) (*tenant.Tenant, error)
}
