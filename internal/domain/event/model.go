package event

import (
	"time"

	"github.com/launchbay/studiopool/internal/domain/project"
)

// Type identifies the lifecycle transition an event records.
type Type string

const (
	TypeProjectCreated   Type = "project.created"
	TypeProjectOnboarded Type = "project.onboarded"
	TypeProjectGraduated Type = "project.graduated"
)

// Event is the envelope emitted once per successful transition.
type Event struct {
	ID          int64            `json:"id,omitempty"`
	Type        Type             `json:"type"`
	EntityID    string           `json:"entity_id"`
	Entity      *project.Project `json:"entity"`
	Timestamp   time.Time        `json:"timestamp"`
	TriggeredBy string           `json:"triggered_by,omitempty"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
}
