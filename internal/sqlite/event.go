package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/launchbay/studiopool/internal/domain/event"
	"github.com/launchbay/studiopool/internal/domain/project"
)

// EventRepository implements repository.EventRepository for SQLite
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Append journals an event
func (r *EventRepository) Append(ctx context.Context, evt *event.Event) error {
	query := `
		INSERT INTO events (type, entity_id, entity, triggered_by, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var entity any
	if evt.Entity != nil {
		data, err := json.Marshal(evt.Entity)
		if err != nil {
			return fmt.Errorf("failed to encode event entity: %w", err)
		}
		entity = string(data)
	}

	var metadata any
	if len(evt.Metadata) > 0 {
		data, err := json.Marshal(evt.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode event metadata: %w", err)
		}
		metadata = string(data)
	}

	result, err := r.db.ExecContext(ctx, query,
		evt.Type,
		evt.EntityID,
		entity,
		evt.TriggeredBy,
		metadata,
		evt.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		evt.ID = id
	}
	return nil
}

// List returns journaled events, newest first
func (r *EventRepository) List(ctx context.Context, opts event.ListOptions) ([]event.Event, error) {
	query := `
		SELECT id, type, entity_id, entity, triggered_by, metadata, created_at
		FROM events
	`

	var conditions []string
	var args []any
	if opts.EntityID != "" {
		conditions = append(conditions, "entity_id = ?")
		args = append(args, opts.EntityID)
	}
	if opts.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, *opts.Type)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var evt event.Event
		var entity, triggeredBy, metadata sql.NullString

		err := rows.Scan(&evt.ID, &evt.Type, &evt.EntityID, &entity, &triggeredBy, &metadata, &evt.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		if entity.Valid && entity.String != "" {
			var proj project.Project
			if err := json.Unmarshal([]byte(entity.String), &proj); err != nil {
				return nil, fmt.Errorf("failed to decode event entity: %w", err)
			}
			evt.Entity = &proj
		}
		evt.TriggeredBy = triggeredBy.String
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &evt.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode event metadata: %w", err)
			}
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return events, nil
}
