package slot

import (
	"context"
	"fmt"
	"log/slog"
)

// Registry derives slot occupancy from the project store. It holds no
// state of its own; every snapshot is recomputed from current store
// contents.
type Registry struct {
	projects ProjectRepository
	category string
	logger   *slog.Logger
}

// NewRegistry creates a registry scoped to the managed category.
func NewRegistry(projects ProjectRepository, category string, logger *slog.Logger) *Registry {
	return &Registry{projects: projects, category: category, logger: logger}
}

// Snapshot builds the current slot board. Active projects are matched
// to their slot positions; pending projects are listed oldest first.
func (r *Registry) Snapshot(ctx context.Context) (*Snapshot, error) {
	active, err := r.projects.ListActive(ctx, r.category)
	if err != nil {
		return nil, fmt.Errorf("listing active projects: %w", err)
	}

	pending, err := r.projects.ListPending(ctx, r.category)
	if err != nil {
		return nil, fmt.Errorf("listing pending projects: %w", err)
	}

	snap := &Snapshot{Pending: pending}
	for i := range snap.Slots {
		snap.Slots[i].Number = i + 1
	}

	for _, proj := range active {
		if proj.SlotNumber == nil || !Valid(*proj.SlotNumber) {
			// Should be impossible given the store constraints.
			if r.logger != nil {
				r.logger.Warn("active project without a valid slot", "project_id", proj.ID)
			}
			continue
		}
		gen := proj.Generation
		info := &snap.Slots[*proj.SlotNumber-1]
		info.OccupantID = proj.ID
		info.OccupantName = proj.Name
		info.Generation = &gen
		info.AssignedAt = proj.BetaStartedAt
		snap.TotalActive++
	}

	snap.AvailableSlots = Capacity - snap.TotalActive
	return snap, nil
}
