package lifecycle

import "errors"

var (
	// ErrWrongCategory indicates the project is outside the managed category.
	ErrWrongCategory = errors.New("project category not managed by this pool")
	// ErrNotPending indicates the project cannot be onboarded from its current status.
	ErrNotPending = errors.New("project is not pending")
	// ErrNotActive indicates the project cannot graduate from its current status.
	ErrNotActive = errors.New("project is not active")
	// ErrPoolFull indicates all slots are occupied.
	ErrPoolFull = errors.New("no free slot in the pool")
	// ErrSlotOccupied indicates the requested slot already has an occupant.
	ErrSlotOccupied = errors.New("requested slot is occupied")
	// ErrAlreadyGraduated indicates the project has already graduated.
	ErrAlreadyGraduated = errors.New("project already graduated")
)
