package tenant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const slugSuffix = "-workspace"

// ProvisionRequest carries the project fields a workspace is built from.
type ProvisionRequest struct {
	ProjectID string
	Name      string
	Features  map[string]bool
}

// Provisioner builds workspace tenant records for projects entering the
// pool. The record it returns is written by the store inside the same
// transaction as the project activation, so a provisioning failure
// aborts the whole onboarding.
type Provisioner struct {
	repo   Repository
	logger *slog.Logger
}

// NewProvisioner creates a provisioner.
func NewProvisioner(repo Repository, logger *slog.Logger) *Provisioner {
	return &Provisioner{repo: repo, logger: logger}
}

// Provision builds the tenant record for a project. The id is a fresh
// uuid; the human-facing slug is derived from the project name and
// checked for uniqueness, falling back to an id-qualified slug on
// collision.
func (p *Provisioner) Provision(ctx context.Context, req ProvisionRequest) (*Tenant, error) {
	if req.ProjectID == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	id := uuid.NewString()
	slug := Slugify(req.Name)

	exists, err := p.repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("checking tenant slug: %w", err)
	}
	if exists {
		// Two project names can normalize identically; qualify with the
		// tenant id rather than overwrite.
		slug = fmt.Sprintf("%s-%s", slug, id[:8])
		if p.logger != nil {
			p.logger.Info("tenant slug collision, using qualified slug", "project_id", req.ProjectID, "slug", slug)
		}
	}

	features := make(map[string]bool, len(req.Features))
	for k, v := range req.Features {
		features[k] = v
	}

	now := time.Now()
	return &Tenant{
		ID:        id,
		Name:      req.Name,
		Slug:      slug,
		Type:      TypeWorkspace,
		ProjectID: req.ProjectID,
		Status:    StatusActive,
		Features:  features,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Slugify normalizes a project name into a tenant slug: lower-cased,
// whitespace runs collapsed to hyphens, workspace suffix appended.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-") + slugSuffix
}
