package slot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/slot"
	"github.com/launchbay/studiopool/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func occupant(id string, n int) project.Project {
	now := time.Now()
	return project.Project{
		ID:               id,
		Category:         "studio",
		Name:             "Project " + id,
		Status:           project.StatusActive,
		Stage:            project.StageBeta,
		SlotNumber:       &n,
		Generation:       1,
		ActiveSlotHolder: true,
		CreatedAt:        now,
		BetaStartedAt:    &now,
	}
}

func TestRegistry_SnapshotEmptyBoard(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("ListActive", ctx, "studio").Return([]project.Project(nil), nil)
	repo.On("ListPending", ctx, "studio").Return([]project.Project(nil), nil)

	reg := slot.NewRegistry(repo, "studio", nil)
	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, snap.TotalActive)
	require.Equal(t, slot.Capacity, snap.AvailableSlots)
	require.Equal(t, 1, snap.LowestFree())
	for i, info := range snap.Slots {
		require.Equal(t, i+1, info.Number)
		require.False(t, info.Occupied())
	}
}

func TestRegistry_SnapshotMatchesOccupants(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	active := []project.Project{occupant("a", 1), occupant("b", 3), occupant("c", 6)}
	pending := []project.Project{{ID: "d", Status: project.StatusPending}, {ID: "e", Status: project.StatusPending}}
	repo.On("ListActive", ctx, "studio").Return(active, nil)
	repo.On("ListPending", ctx, "studio").Return(pending, nil)

	reg := slot.NewRegistry(repo, "studio", nil)
	snap, err := reg.Snapshot(ctx)
	require.NoError(t, err)

	require.Equal(t, 3, snap.TotalActive)
	require.Equal(t, 3, snap.AvailableSlots)
	require.Equal(t, slot.Capacity, snap.TotalActive+snap.AvailableSlots)
	require.Equal(t, 2, snap.LowestFree())

	require.Equal(t, "a", snap.Slots[0].OccupantID)
	require.False(t, snap.Slots[1].Occupied())
	require.Equal(t, "b", snap.Slots[2].OccupantID)
	require.Equal(t, "c", snap.Slots[5].OccupantID)
	require.Equal(t, []string{"d", "e"}, []string{snap.Pending[0].ID, snap.Pending[1].ID})

	// No two descriptors share an occupant.
	seen := map[string]bool{}
	for _, info := range snap.Slots {
		if info.Occupied() {
			require.False(t, seen[info.OccupantID])
			seen[info.OccupantID] = true
		}
	}
}

func TestRegistry_SnapshotIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("ListActive", ctx, "studio").Return([]project.Project{occupant("a", 2)}, nil)
	repo.On("ListPending", ctx, "studio").Return([]project.Project(nil), nil)

	reg := slot.NewRegistry(repo, "studio", nil)
	first, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	second, err := reg.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRegistry_SnapshotStorageError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("ListActive", ctx, "studio").Return(nil, errors.New("store unreachable"))

	reg := slot.NewRegistry(repo, "studio", nil)
	_, err := reg.Snapshot(ctx)
	require.Error(t, err)
}

func TestSnapshot_FreeAndValid(t *testing.T) {
	require.False(t, slot.Valid(0))
	require.True(t, slot.Valid(1))
	require.True(t, slot.Valid(6))
	require.False(t, slot.Valid(7))

	var snap slot.Snapshot
	for i := range snap.Slots {
		snap.Slots[i].Number = i + 1
	}
	snap.Slots[2].OccupantID = "x"
	require.True(t, snap.Free(1))
	require.False(t, snap.Free(3))
	require.False(t, snap.Free(0))
	require.False(t, snap.Free(7))
}
