package slot

import (
	"errors"
	"time"

	"github.com/launchbay/studiopool/internal/domain/project"
)

// Capacity is the fixed number of active slots in the pool.
const Capacity = 6

// ErrInvalidSlot indicates a slot number outside [1, Capacity].
var ErrInvalidSlot = errors.New("slot number out of range")

// Info describes one slot position on the board. A free slot has an
// empty OccupantID and nil Generation/AssignedAt.
type Info struct {
	Number       int        `json:"number"`
	OccupantID   string     `json:"occupant_id,omitempty"`
	OccupantName string     `json:"occupant_name,omitempty"`
	Generation   *int       `json:"generation,omitempty"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
}

// Occupied reports whether the slot has an occupant.
func (i Info) Occupied() bool {
	return i.OccupantID != ""
}

// Snapshot is a derived, read-only view of pool occupancy.
type Snapshot struct {
	Slots          [Capacity]Info    `json:"slots"`
	Pending        []project.Project `json:"pending"`
	TotalActive    int               `json:"total_active"`
	AvailableSlots int               `json:"available_slots"`
}

// Valid reports whether n is a legal slot number.
func Valid(n int) bool {
	return n >= 1 && n <= Capacity
}

// LowestFree returns the lowest unoccupied slot number, or 0 when the
// board is full.
func (s *Snapshot) LowestFree() int {
	for _, info := range s.Slots {
		if !info.Occupied() {
			return info.Number
		}
	}
	return 0
}

// Free reports whether slot n is unoccupied.
func (s *Snapshot) Free(n int) bool {
	if !Valid(n) {
		return false
	}
	return !s.Slots[n-1].Occupied()
}
