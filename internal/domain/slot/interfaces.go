package slot

import (
	"context"

	"github.com/launchbay/studiopool/internal/domain/project"
)

// ProjectRepository provides the project reads the registry needs.
type ProjectRepository interface {
	ListActive(ctx context.Context, category string) ([]project.Project, error)
	ListPending(ctx context.Context, category string) ([]project.Project, error)
}
