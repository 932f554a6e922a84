package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/launchbay/studiopool/internal/domain/generation"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/tenant"
	"github.com/launchbay/studiopool/internal/repository"
)

const projectColumns = `id, category, name, description, stage, status, slot_number,
		       generation, active_slot_holder, tenant_ids, features, version,
		       created_at, beta_started_at, graduated_at`

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project that holds no slot
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	if err := r.insert(ctx, r.db.DB, proj); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// CreateActive inserts a directly-active project together with its
// provisioned tenant in a single transaction. A slot or slug taken by a
// concurrent writer rolls the whole insert back with ErrConflict.
func (r *ProjectRepository) CreateActive(ctx context.Context, proj *project.Project, ten *tenant.Tenant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.insert(ctx, tx, proj); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := insertTenant(ctx, tx, ten); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *ProjectRepository) insert(ctx context.Context, db execer, proj *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	tenantIDs, err := marshalStrings(proj.TenantIDs)
	if err != nil {
		return err
	}
	features, err := marshalFeatures(proj.Features)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, query,
		proj.ID,
		proj.Category,
		proj.Name,
		proj.Description,
		proj.Stage,
		proj.Status,
		nullableInt(proj.SlotNumber),
		proj.Generation,
		proj.ActiveSlotHolder,
		tenantIDs,
		features,
		proj.Version,
		proj.CreatedAt,
		nullableTime(proj.BetaStartedAt),
		nullableTime(proj.GraduatedAt),
	)
	return err
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// Update writes the project if its stored version equals
// expectedVersion. A stale version means another writer got there
// first; the caller sees ErrConflict and may retry from a fresh read.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project, expectedVersion int64) error {
	result, err := r.update(ctx, r.db.DB, proj, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return checkUpdated(ctx, r.db.DB, proj.ID, result)
}

// Activate writes the activated project and inserts its tenant in one
// transaction guarded by expectedVersion. The partial unique index on
// active slots makes the losing racer's UPDATE fail even when the
// version check cannot see the competing insert.
func (r *ProjectRepository) Activate(ctx context.Context, proj *project.Project, expectedVersion int64, ten *tenant.Tenant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := r.update(ctx, tx, proj, expectedVersion)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to activate project: %w", err)
	}
	if err := checkUpdated(ctx, tx, proj.ID, result); err != nil {
		return err
	}

	if err := insertTenant(ctx, tx, ten); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *ProjectRepository) update(ctx context.Context, db execer, proj *project.Project, expectedVersion int64) (sql.Result, error) {
	query := `
		UPDATE projects
		SET stage = ?, status = ?, slot_number = ?, active_slot_holder = ?,
		    tenant_ids = ?, features = ?, version = ?,
		    beta_started_at = ?, graduated_at = ?
		WHERE id = ? AND version = ?
	`

	tenantIDs, err := marshalStrings(proj.TenantIDs)
	if err != nil {
		return nil, err
	}
	features, err := marshalFeatures(proj.Features)
	if err != nil {
		return nil, err
	}

	return db.ExecContext(ctx, query,
		proj.Stage,
		proj.Status,
		nullableInt(proj.SlotNumber),
		proj.ActiveSlotHolder,
		tenantIDs,
		features,
		proj.Version,
		nullableTime(proj.BetaStartedAt),
		nullableTime(proj.GraduatedAt),
		proj.ID,
		expectedVersion,
	)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func checkUpdated(ctx context.Context, db querier, id string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM projects WHERE id = ?)`
	if err := db.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}

	// Project exists but version doesn't match - conflict
	return repository.ErrConflict
}

// ListActive returns active projects in a category ordered by slot
func (r *ProjectRepository) ListActive(ctx context.Context, category string) ([]project.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE category = ? AND status = 'active'
		ORDER BY slot_number ASC
	`
	return r.list(ctx, query, category)
}

// ListPending returns pending projects in a category, oldest first
func (r *ProjectRepository) ListPending(ctx context.Context, category string) ([]project.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE category = ? AND status = 'pending'
		ORDER BY created_at ASC
	`
	return r.list(ctx, query, category)
}

// ListByGeneration returns a generation's projects, newest first
func (r *ProjectRepository) ListByGeneration(ctx context.Context, category string, gen int) ([]project.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE category = ? AND generation = ?
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, category, gen)
}

// GenerationSummary tallies projects per generation by status
func (r *ProjectRepository) GenerationSummary(ctx context.Context, category string) ([]generation.Summary, error) {
	query := `
		SELECT
			generation,
			COUNT(*) as total_count,
			COUNT(CASE WHEN status = 'active' THEN 1 END) as active_count,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) as pending_count,
			COUNT(CASE WHEN status = 'graduated' THEN 1 END) as graduated_count
		FROM projects
		WHERE category = ?
		GROUP BY generation
		ORDER BY generation ASC
	`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize generations: %w", err)
	}
	defer rows.Close()

	var summaries []generation.Summary
	for rows.Next() {
		var s generation.Summary
		if err := rows.Scan(&s.Generation, &s.TotalCount, &s.ActiveCount, &s.PendingCount, &s.GraduatedCount); err != nil {
			return nil, fmt.Errorf("failed to scan generation summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generation rows: %w", err)
	}
	return summaries, nil
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var description sql.NullString
	var slotNumber sql.NullInt64
	var tenantIDs, features sql.NullString
	var betaStartedAt, graduatedAt sql.NullTime

	err := row.Scan(
		&proj.ID,
		&proj.Category,
		&proj.Name,
		&description,
		&proj.Stage,
		&proj.Status,
		&slotNumber,
		&proj.Generation,
		&proj.ActiveSlotHolder,
		&tenantIDs,
		&features,
		&proj.Version,
		&proj.CreatedAt,
		&betaStartedAt,
		&graduatedAt,
	)
	if err != nil {
		return nil, err
	}

	proj.Description = description.String
	if slotNumber.Valid {
		n := int(slotNumber.Int64)
		proj.SlotNumber = &n
	}
	if betaStartedAt.Valid {
		t := betaStartedAt.Time
		proj.BetaStartedAt = &t
	}
	if graduatedAt.Valid {
		t := graduatedAt.Time
		proj.GraduatedAt = &t
	}
	if tenantIDs.Valid && tenantIDs.String != "" {
		if err := json.Unmarshal([]byte(tenantIDs.String), &proj.TenantIDs); err != nil {
			return nil, fmt.Errorf("failed to decode tenant ids: %w", err)
		}
	}
	if features.Valid && features.String != "" {
		if err := json.Unmarshal([]byte(features.String), &proj.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features: %w", err)
		}
	}
	return &proj, nil
}

func marshalStrings(values []string) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(data), nil
}

func marshalFeatures(features map[string]bool) (any, error) {
	if len(features) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}
	return string(data), nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
