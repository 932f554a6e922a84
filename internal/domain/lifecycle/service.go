package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/launchbay/studiopool/internal/domain/event"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/slot"
	"github.com/launchbay/studiopool/internal/domain/tenant"
	"github.com/launchbay/studiopool/internal/repository"
	"github.com/google/uuid"
)

// Service is the lifecycle state machine. It validates and executes the
// legal transitions (create, onboard, graduate) against a slot board
// snapshot, writing through the store's atomic versioned primitives.
type Service struct {
	repo        ProjectRepository
	board       SnapshotSource
	provisioner Provisioner
	events      event.Publisher
	category    string
	logger      *slog.Logger
}

// NewService creates a lifecycle service managing one project category.
func NewService(
	repo ProjectRepository,
	board SnapshotSource,
	provisioner Provisioner,
	events event.Publisher,
	category string,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		board:       board,
		provisioner: provisioner,
		events:      events,
		category:    category,
		logger:      logger,
	}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID          string
	Name        string
	Description string
	Generation  int
	Features    map[string]bool
	Actor       string
}

// Create creates a new project. When a slot is free the project is
// created directly active: atomically assigned the lowest free slot
// with its workspace tenant provisioned in the same transaction.
// Otherwise it is created pending, first in line by creation time.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*project.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, project.ErrInvalidInput
	}

	gen := req.Generation
	if gen == 0 {
		gen = 1
	}
	if gen < 1 {
		return nil, project.ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	snap, err := s.board.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading slot board: %w", err)
	}

	proj := &project.Project{
		ID:          id,
		Category:    s.category,
		Name:        req.Name,
		Description: req.Description,
		Stage:       project.StageConcept,
		Status:      project.StatusPending,
		Generation:  gen,
		Features:    req.Features,
		Version:     1,
		CreatedAt:   time.Now(),
	}

	metadata := map[string]any{"generation": gen}

	if snap.AvailableSlots > 0 {
		chosen := snap.LowestFree()
		now := proj.CreatedAt
		proj.Status = project.StatusActive
		proj.Stage = project.StageBeta
		proj.SlotNumber = &chosen
		proj.ActiveSlotHolder = true
		proj.BetaStartedAt = &now

		ten, err := s.provisioner.Provision(ctx, tenant.ProvisionRequest{
			ProjectID: proj.ID,
			Name:      proj.Name,
			Features:  proj.Features,
		})
		if err != nil {
			return nil, fmt.Errorf("provisioning tenant: %w", err)
		}
		proj.TenantIDs = []string{ten.ID}

		if err := s.repo.CreateActive(ctx, proj, ten); err != nil {
			return nil, fmt.Errorf("creating project: %w", err)
		}
		metadata["slot"] = chosen
		metadata["tenant_id"] = ten.ID
	} else {
		if err := s.repo.Create(ctx, proj); err != nil {
			return nil, fmt.Errorf("creating project: %w", err)
		}
	}

	s.events.Publish(ctx, event.Event{
		Type:        event.TypeProjectCreated,
		EntityID:    proj.ID,
		Entity:      proj,
		TriggeredBy: req.Actor,
		Metadata:    metadata,
	})

	if s.logger != nil {
		s.logger.Info("project created", "project_id", proj.ID, "status", proj.Status, "generation", gen)
	}
	return proj, nil
}

// Onboard moves a pending project into a slot. If requestedSlot is nil
// the lowest free slot is chosen. The slot assignment, the status
// write, and the tenant insert commit in one transaction; losing a race
// for the slot surfaces repository.ErrConflict, which callers may
// retry.
func (s *Service) Onboard(ctx context.Context, id string, requestedSlot *int) (*project.Project, error) {
	snap, err := s.board.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading slot board: %w", err)
	}
	if snap.AvailableSlots == 0 {
		return nil, ErrPoolFull
	}

	proj, err := s.getManaged(ctx, id)
	if err != nil {
		return nil, err
	}
	if proj.Status != project.StatusPending {
		return nil, ErrNotPending
	}

	var chosen int
	if requestedSlot != nil {
		if !slot.Valid(*requestedSlot) {
			return nil, slot.ErrInvalidSlot
		}
		if !snap.Free(*requestedSlot) {
			return nil, ErrSlotOccupied
		}
		chosen = *requestedSlot
	} else {
		chosen = snap.LowestFree()
	}

	ten, err := s.provisioner.Provision(ctx, tenant.ProvisionRequest{
		ProjectID: proj.ID,
		Name:      proj.Name,
		Features:  proj.Features,
	})
	if err != nil {
		return nil, fmt.Errorf("provisioning tenant: %w", err)
	}

	now := time.Now()
	prior := proj.Version
	updated := *proj
	updated.Status = project.StatusActive
	updated.Stage = project.StageBeta
	updated.SlotNumber = &chosen
	updated.ActiveSlotHolder = true
	updated.BetaStartedAt = &now
	updated.TenantIDs = append(append([]string(nil), proj.TenantIDs...), ten.ID)
	updated.Version = prior + 1

	if err := s.repo.Activate(ctx, &updated, prior, ten); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("activating project: %w", err)
	}

	s.events.Publish(ctx, event.Event{
		Type:     event.TypeProjectOnboarded,
		EntityID: updated.ID,
		Entity:   &updated,
		Metadata: map[string]any{"slot": chosen, "tenant_id": ten.ID},
	})

	if s.logger != nil {
		s.logger.Info("project onboarded", "project_id", updated.ID, "slot", chosen, "tenant_id", ten.ID)
	}
	return &updated, nil
}

// Graduate moves an active project out of the pool, freeing its slot.
// Graduated is terminal; no transition leads back into the pool.
func (s *Service) Graduate(ctx context.Context, id, reason string) (*project.Project, error) {
	proj, err := s.getManaged(ctx, id)
	if err != nil {
		return nil, err
	}
	if proj.Status == project.StatusGraduated {
		return nil, ErrAlreadyGraduated
	}
	if proj.Status != project.StatusActive || proj.SlotNumber == nil {
		return nil, ErrNotActive
	}

	freed := *proj.SlotNumber
	now := time.Now()
	prior := proj.Version
	updated := *proj
	updated.Status = project.StatusGraduated
	updated.Stage = project.StageCommercial
	updated.SlotNumber = nil
	updated.ActiveSlotHolder = false
	updated.GraduatedAt = &now
	updated.Version = prior + 1

	if err := s.repo.Update(ctx, &updated, prior); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("graduating project: %w", err)
	}

	metadata := map[string]any{"freed_slot": freed}
	if reason != "" {
		metadata["reason"] = reason
	}
	s.events.Publish(ctx, event.Event{
		Type:     event.TypeProjectGraduated,
		EntityID: updated.ID,
		Entity:   &updated,
		Metadata: metadata,
	})

	if s.logger != nil {
		s.logger.Info("project graduated", "project_id", updated.ID, "freed_slot", freed, "reason", reason)
	}
	return &updated, nil
}

// Get fetches a managed project by ID.
func (s *Service) Get(ctx context.Context, id string) (*project.Project, error) {
	return s.getManaged(ctx, id)
}

func (s *Service) getManaged(ctx context.Context, id string) (*project.Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if proj.Category != s.category {
		return nil, ErrWrongCategory
	}
	return proj, nil
}
