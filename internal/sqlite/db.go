package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
//
// The projects table carries the pool invariants the repositories rely
// on: a partial unique index keeps one active occupant per slot even
// under racing writers, and CHECK constraints keep status, slot_number,
// and active_slot_holder in lockstep.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE projects (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    stage TEXT NOT NULL CHECK(stage IN ('concept', 'beta', 'commercial')),
    status TEXT NOT NULL CHECK(status IN ('concept', 'pending', 'active', 'graduated')),
    slot_number INTEGER CHECK(slot_number BETWEEN 1 AND 6),
    generation INTEGER NOT NULL DEFAULT 1 CHECK(generation >= 1),
    active_slot_holder INTEGER NOT NULL DEFAULT 0,
    tenant_ids TEXT,
    features TEXT,
    version INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL,
    beta_started_at TIMESTAMP,
    graduated_at TIMESTAMP,
    CHECK ((status = 'active') = (slot_number IS NOT NULL)),
    CHECK ((slot_number IS NOT NULL) = (active_slot_holder <> 0))
);
CREATE INDEX idx_projects_category_status ON projects(category, status);
CREATE INDEX idx_projects_generation ON projects(category, generation);
CREATE UNIQUE INDEX idx_projects_active_slot ON projects(category, slot_number) WHERE status = 'active';

-- Tenant workspaces provisioned for onboarded projects
CREATE TABLE tenants (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL,
    project_id TEXT NOT NULL,
    status TEXT NOT NULL,
    features TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX idx_tenants_project ON tenants(project_id);

-- Event journal
CREATE TABLE events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL,
    entity_id TEXT NOT NULL,
    entity TEXT,
    triggered_by TEXT,
    metadata TEXT,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_events_entity ON events(entity_id);
CREATE INDEX idx_events_created_at ON events(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
