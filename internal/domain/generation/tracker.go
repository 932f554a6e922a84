package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/launchbay/studiopool/internal/domain/project"
)

// Tracker is a read-only reporting view over projects grouped by
// generation. Results are always recomputed from current store state.
type Tracker struct {
	projects ProjectRepository
	category string
	logger   *slog.Logger
}

// NewTracker creates a tracker scoped to the managed category.
func NewTracker(projects ProjectRepository, category string, logger *slog.Logger) *Tracker {
	return &Tracker{projects: projects, category: category, logger: logger}
}

// ByGeneration lists projects of one generation, newest first.
func (t *Tracker) ByGeneration(ctx context.Context, gen int) ([]project.Project, error) {
	if gen < 1 {
		return nil, project.ErrInvalidInput
	}
	projects, err := t.projects.ListByGeneration(ctx, t.category, gen)
	if err != nil {
		return nil, fmt.Errorf("listing generation %d: %w", gen, err)
	}
	return projects, nil
}

// Summary tallies all generations in the managed category, ascending
// by generation.
func (t *Tracker) Summary(ctx context.Context) ([]Summary, error) {
	summaries, err := t.projects.GenerationSummary(ctx, t.category)
	if err != nil {
		return nil, fmt.Errorf("summarizing generations: %w", err)
	}
	return summaries, nil
}
