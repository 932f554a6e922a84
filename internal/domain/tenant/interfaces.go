package tenant

import "context"

// Repository provides tenant persistence reads. Tenant writes happen
// inside the project activation transaction, not here.
type Repository interface {
	Get(ctx context.Context, id string) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByProject(ctx context.Context, projectID string) ([]Tenant, error)
}
