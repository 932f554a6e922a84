package project

import "time"

// Status is the allocator-relevant state of a project.
type Status string

const (
	StatusConcept   Status = "concept"
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusGraduated Status = "graduated"
)

// Stage is the coarse business-lifecycle label. It is updated in
// lockstep with Status but not itself enforced by the allocator.
type Stage string

const (
	StageConcept    Stage = "concept"
	StageBeta       Stage = "beta"
	StageCommercial Stage = "commercial"
)

// Project is an allocatable studio project. At most one project holds a
// given slot number at a time, and only while its status is active.
type Project struct {
	ID               string          `json:"id"`
	Category         string          `json:"category"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Stage            Stage           `json:"stage"`
	Status           Status          `json:"status"`
	SlotNumber       *int            `json:"slot_number,omitempty"`
	Generation       int             `json:"generation"`
	ActiveSlotHolder bool            `json:"active_slot_holder"`
	TenantIDs        []string        `json:"tenant_ids,omitempty"`
	Features         map[string]bool `json:"features,omitempty"`
	Version          int64           `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	BetaStartedAt    *time.Time      `json:"beta_started_at,omitempty"`
	GraduatedAt      *time.Time      `json:"graduated_at,omitempty"`
}

// HoldsSlot reports whether the project currently occupies a slot.
func (p *Project) HoldsSlot() bool {
	return p.Status == StatusActive && p.SlotNumber != nil
}
