package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/launchbay/studiopool/internal/domain/tenant"
	"github.com/launchbay/studiopool/internal/repository"
)

const tenantColumns = `id, name, slug, type, project_id, status, features, created_at, updated_at`

// TenantRepository implements repository.TenantRepository for SQLite
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// insertTenant writes a tenant row. It is shared with the project
// repository so activations can include the insert in their
// transaction.
func insertTenant(ctx context.Context, db execer, ten *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	features, err := marshalFeatures(ten.Features)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, query,
		ten.ID,
		ten.Name,
		ten.Slug,
		ten.Type,
		ten.ProjectID,
		ten.Status,
		features,
		ten.CreatedAt,
		ten.UpdatedAt,
	)
	return err
}

// Get retrieves a tenant by ID
func (r *TenantRepository) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = ?`
	return r.get(ctx, query, id)
}

// GetBySlug retrieves a tenant by slug
func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = ?`
	return r.get(ctx, query, slug)
}

func (r *TenantRepository) get(ctx context.Context, query string, arg any) (*tenant.Tenant, error) {
	ten, err := scanTenant(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return ten, nil
}

// SlugExists reports whether a tenant with the slug already exists
func (r *TenantRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM tenants WHERE slug = ?)`
	if err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check tenant slug: %w", err)
	}
	return exists, nil
}

// ListByProject returns the tenants provisioned for a project
func (r *TenantRepository) ListByProject(ctx context.Context, projectID string) ([]tenant.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE project_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		ten, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, *ten)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}
	return tenants, nil
}

func scanTenant(row rowScanner) (*tenant.Tenant, error) {
	var ten tenant.Tenant
	var features sql.NullString

	err := row.Scan(
		&ten.ID,
		&ten.Name,
		&ten.Slug,
		&ten.Type,
		&ten.ProjectID,
		&ten.Status,
		&features,
		&ten.CreatedAt,
		&ten.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if features.Valid && features.String != "" {
		if err := json.Unmarshal([]byte(features.String), &ten.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features: %w", err)
		}
	}
	return &ten, nil
}
