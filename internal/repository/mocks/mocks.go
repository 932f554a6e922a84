package mocks

import (
	"context"

	"github.com/launchbay/studiopool/internal/domain/event"
	"github.com/launchbay/studiopool/internal/domain/generation"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/tenant"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) CreateActive(ctx context.Context, proj *project.Project, ten *tenant.Tenant) error {
	args := m.Called(ctx, proj, ten)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project, expectedVersion int64) error {
	args := m.Called(ctx, proj, expectedVersion)
	return args.Error(0)
}

func (m *ProjectRepository) Activate(ctx context.Context, proj *project.Project, expectedVersion int64, ten *tenant.Tenant) error {
	args := m.Called(ctx, proj, expectedVersion, ten)
	return args.Error(0)
}

func (m *ProjectRepository) ListActive(ctx context.Context, category string) ([]project.Project, error) {
	args := m.Called(ctx, category)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListPending(ctx context.Context, category string) ([]project.Project, error) {
	args := m.Called(ctx, category)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListByGeneration(ctx context.Context, category string, gen int) ([]project.Project, error) {
	args := m.Called(ctx, category, gen)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GenerationSummary(ctx context.Context, category string) ([]generation.Summary, error) {
	args := m.Called(ctx, category)
	if list, ok := args.Get(0).([]generation.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TenantRepository is a mock for repository.TenantRepository.
type TenantRepository struct {
	mock.Mock
}

func (m *TenantRepository) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if ten, ok := args.Get(0).(*tenant.Tenant); ok {
		return ten, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	args := m.Called(ctx, slug)
	if ten, ok := args.Get(0).(*tenant.Tenant); ok {
		return ten, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TenantRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *TenantRepository) ListByProject(ctx context.Context, projectID string) ([]tenant.Tenant, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]tenant.Tenant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EventRepository is a mock for repository.EventRepository.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Append(ctx context.Context, evt *event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *EventRepository) List(ctx context.Context, opts event.ListOptions) ([]event.Event, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
