package tenant

import "time"

// TypeWorkspace is the tenant type provisioned for onboarded projects.
const TypeWorkspace = "workspace"

// StatusActive is the status a freshly provisioned tenant starts in.
const StatusActive = "active"

// Tenant is a workspace record provisioned 1:1 for a project when it
// takes a slot.
type Tenant struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Type      string          `json:"type"`
	ProjectID string          `json:"project_id"`
	Status    string          `json:"status"`
	Features  map[string]bool `json:"features,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
