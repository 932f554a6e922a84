package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/launchbay/studiopool/internal/domain/event"
	"github.com/launchbay/studiopool/internal/domain/generation"
	"github.com/launchbay/studiopool/internal/domain/lifecycle"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/slot"
	"github.com/launchbay/studiopool/internal/domain/tenant"
	"github.com/launchbay/studiopool/internal/repository"
	"github.com/launchbay/studiopool/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// pool wires the real services over a fresh in-memory database, the
// same assembly cmd/server performs.
type pool struct {
	projects  *sqlite.ProjectRepository
	tenants   *sqlite.TenantRepository
	lifecycle *lifecycle.Service
	board     *slot.Registry
	tracker   *generation.Tracker
	events    *event.Service
}

func newPool(t *testing.T) *pool {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	// In-memory databases are per-connection; keep the pool at one.
	db.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	projects := sqlite.NewProjectRepository(db)
	tenants := sqlite.NewTenantRepository(db)
	eventRepo := sqlite.NewEventRepository(db)

	board := slot.NewRegistry(projects, "studio", nil)
	provisioner := tenant.NewProvisioner(tenants, nil)
	events := event.NewService(eventRepo, nil)

	return &pool{
		projects:  projects,
		tenants:   tenants,
		lifecycle: lifecycle.NewService(projects, board, provisioner, events, "studio", nil),
		board:     board,
		tracker:   generation.NewTracker(projects, "studio", nil),
		events:    events,
	}
}

func (p *pool) create(t *testing.T, name string) *project.Project {
	t.Helper()
	proj, err := p.lifecycle.Create(context.Background(), lifecycle.CreateRequest{Name: name, Actor: "tester"})
	require.NoError(t, err)
	return proj
}

func (p *pool) fill(t *testing.T) []*project.Project {
	t.Helper()
	created := make([]*project.Project, 0, slot.Capacity)
	for i := 1; i <= slot.Capacity; i++ {
		created = append(created, p.create(t, fmt.Sprintf("Studio %d", i)))
	}
	return created
}

func TestPoolFillsThenQueues(t *testing.T) {
	p := newPool(t)
	ctx := context.Background()

	created := p.fill(t)
	for i, proj := range created {
		require.Equal(t, project.StatusActive, proj.Status)
		require.Equal(t, project.StageBeta, proj.Stage)
		require.NotNil(t, proj.SlotNumber)
		require.Equal(t, i+1, *proj.SlotNumber)
		require.Len(t, proj.TenantIDs, 1)

		ten, err := p.tenants.Get(ctx, proj.TenantIDs[0])
		require.NoError(t, err)
		require.Equal(t, proj.ID, ten.ProjectID)
	}

	// Seventh arrival queues
	seventh := p.create(t, "Studio 7")
	require.Equal(t, project.StatusPending, seventh.Status)
	require.Equal(t, project.StageConcept, seventh.Stage)
	require.Nil(t, seventh.SlotNumber)
	require.Empty(t, seventh.TenantIDs)

	snap, err := p.board.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, slot.Capacity, snap.TotalActive)
	require.Equal(t, 0, snap.AvailableSlots)
	require.Len(t, snap.Pending, 1)
	require.Equal(t, seventh.ID, snap.Pending[0].ID)
}

func TestGraduationFreesSlotForPending(t *testing.T) {
	p := newPool(t)
	ctx := context.Background()

	created := p.fill(t)
	waiting := p.create(t, "Challenger")

	graduated, err := p.lifecycle.Graduate(ctx, created[2].ID, "acquired")
	require.NoError(t, err)
	require.Equal(t, project.StatusGraduated, graduated.Status)
	require.Equal(t, project.StageCommercial, graduated.Stage)
	require.Nil(t, graduated.SlotNumber)
	require.NotNil(t, graduated.GraduatedAt)

	snap, err := p.board.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, snap.AvailableSlots)
	require.True(t, snap.Free(3))

	onboarded, err := p.lifecycle.Onboard(ctx, waiting.ID, nil)
	require.NoError(t, err)
	require.Equal(t, project.StatusActive, onboarded.Status)
	require.Equal(t, 3, *onboarded.SlotNumber)
	require.Len(t, onboarded.TenantIDs, 1)

	snap, err = p.board.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, snap.AvailableSlots)
	require.Equal(t, onboarded.ID, snap.Slots[2].OccupantID)
	require.Empty(t, snap.Pending)
}

func TestOnboardRequestedSlotOccupiedNoStateChange(t *testing.T) {
	p := newPool(t)
	ctx := context.Background()

	created := p.fill(t)
	waiting := p.create(t, "Challenger")

	_, err := p.lifecycle.Graduate(ctx, created[4].ID, "")
	require.NoError(t, err)

	occupied := 3
	_, err = p.lifecycle.Onboard(ctx, waiting.ID, &occupied)
	require.ErrorIs(t, err, lifecycle.ErrSlotOccupied)

	// Nothing moved: still pending, no tenant provisioned, slot 5 still free
	retrieved, err := p.lifecycle.Get(ctx, waiting.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusPending, retrieved.Status)
	require.Equal(t, int64(1), retrieved.Version)

	tenants, err := p.tenants.ListByProject(ctx, waiting.ID)
	require.NoError(t, err)
	require.Empty(t, tenants)

	snap, err := p.board.Snapshot(ctx)
	require.NoError(t, err)
	require.True(t, snap.Free(5))
}

func TestOnboardPoolFullNoStateChange(t *testing.T) {
	p := newPool(t)
	ctx := context.Background()

	p.fill(t)
	waiting := p.create(t, "Challenger")

	_, err := p.lifecycle.Onboard(ctx, waiting.ID, nil)
	require.ErrorIs(t, err, lifecycle.ErrPoolFull)

	retrieved, err := p.lifecycle.Get(ctx, waiting.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusPending, retrieved.Status)
	require.Equal(t, int64(1), retrieved.Version)
}

func TestGraduateIsTerminal(t *testing.T) {
	p := newPool(t)
	ctx := context.Background()

	proj := p.create(t, "Shooting Star")
	_, err := p.lifecycle.Graduate(ctx, proj.ID, "acquired")
	require.NoError(t, err)

	_, err = p.lifecycle.Graduate(ctx, proj.ID, "again")
	require.ErrorIs(t, err, lifecycle.ErrAlreadyGraduated)

	_, err = p.lifecycle.Onboard(ctx, proj.ID, nil)
	require.ErrorIs(t, err, lifecycle.ErrNotPending)

	retrieved, err := p.lifecycle.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusGraduated, retrieved.Status)
	require.Equal(t, int64(2), retrieved.Version)
}

func TestSlotRaceHasOneWinner(t *testing.T) {
	p := newPool(t)
	ctx := context.Background()

	created := p.fill(t)
	first := p.create(t, "First Racer")
	second := p.create(t, "Second Racer")
	require.Equal(t, project.StatusPending, first.Status)
	require.Equal(t, project.StatusPending, second.Status)

	_, err := p.lifecycle.Graduate(ctx, created[0].ID, "")
	require.NoError(t, err)

	// Both racers observed the same free slot. Drive the store
	// primitive directly with each racer's stale view; the partial
	// unique index lets exactly one through.
	freed := 1
	winner := *first
	winner.Status = project.StatusActive
	winner.Stage = project.StageBeta
	winner.SlotNumber = &freed
	winner.ActiveSlotHolder = true
	winner.Version = first.Version + 1
	require.NoError(t, p.projects.Activate(ctx, &winner, first.Version, testTenant("racer-one", first.ID)))

	loser := *second
	loser.Status = project.StatusActive
	loser.Stage = project.StageBeta
	loser.SlotNumber = &freed
	loser.ActiveSlotHolder = true
	loser.Version = second.Version + 1
	err = p.projects.Activate(ctx, &loser, second.Version, testTenant("racer-two", second.ID))
	require.ErrorIs(t, err, repository.ErrConflict)

	// The loser is untouched and may retry
	retrieved, err := p.lifecycle.Get(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusPending, retrieved.Status)
	require.Equal(t, second.Version, retrieved.Version)

	_, err = p.tenants.Get(ctx, "racer-two")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLifecycleJournal(t *testing.T) {
	p := newPool(t)
	ctx := context.Background()

	created := p.fill(t)
	waiting := p.create(t, "Challenger")

	graduated, err := p.lifecycle.Graduate(ctx, created[0].ID, "acquired")
	require.NoError(t, err)
	onboarded, err := p.lifecycle.Onboard(ctx, waiting.ID, nil)
	require.NoError(t, err)

	events, err := p.events.Recent(ctx, event.ListOptions{Limit: 3})
	require.NoError(t, err)
	require.Len(t, events, 3)

	require.Equal(t, event.TypeProjectOnboarded, events[0].Type)
	require.Equal(t, onboarded.ID, events[0].EntityID)
	require.EqualValues(t, *onboarded.SlotNumber, events[0].Metadata["slot"])

	require.Equal(t, event.TypeProjectGraduated, events[1].Type)
	require.Equal(t, graduated.ID, events[1].EntityID)
	require.Equal(t, "acquired", events[1].Metadata["reason"])

	require.Equal(t, event.TypeProjectCreated, events[2].Type)
	require.Equal(t, waiting.ID, events[2].EntityID)

	filtered, err := p.events.Recent(ctx, event.ListOptions{EntityID: waiting.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
}

func TestGenerationTracking(t *testing.T) {
	p := newPool(t)
	ctx := context.Background()

	first, err := p.lifecycle.Create(ctx, lifecycle.CreateRequest{Name: "Gen One", Generation: 1})
	require.NoError(t, err)
	_, err = p.lifecycle.Create(ctx, lifecycle.CreateRequest{Name: "Gen Two", Generation: 2})
	require.NoError(t, err)
	_, err = p.lifecycle.Graduate(ctx, first.ID, "")
	require.NoError(t, err)

	genOne, err := p.tracker.ByGeneration(ctx, 1)
	require.NoError(t, err)
	require.Len(t, genOne, 1)
	require.Equal(t, first.ID, genOne[0].ID)

	summaries, err := p.tracker.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, 1, summaries[0].GraduatedCount)
	require.Equal(t, 1, summaries[1].ActiveCount)
}

func testTenant(id, projectID string) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        id,
		Name:      "Workspace " + id,
		Slug:      id + "-workspace",
		Type:      tenant.TypeWorkspace,
		ProjectID: projectID,
		Status:    tenant.StatusActive,
	}
}
