package generation

import (
	"context"

	"github.com/launchbay/studiopool/internal/domain/project"
)

// ProjectRepository provides the project reads the tracker needs.
type ProjectRepository interface {
	ListByGeneration(ctx context.Context, category string, gen int) ([]project.Project, error)
	GenerationSummary(ctx context.Context, category string) ([]Summary, error)
}
