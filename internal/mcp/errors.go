package mcp

import (
	"errors"
	"fmt"

	"github.com/launchbay/studiopool/internal/domain/lifecycle"
	"github.com/launchbay/studiopool/internal/domain/project"
	"github.com/launchbay/studiopool/internal/domain/slot"
	"github.com/launchbay/studiopool/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project id"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid project input", RecoveryHint: "Provide a name and a generation >= 1"}
	case errors.Is(err, lifecycle.ErrWrongCategory):
		return &APIError{Code: "WRONG_CATEGORY", Message: "project is outside the managed category"}
	case errors.Is(err, lifecycle.ErrNotPending):
		return &APIError{Code: "NOT_PENDING", Message: "only pending projects can be onboarded"}
	case errors.Is(err, lifecycle.ErrNotActive):
		return &APIError{Code: "NOT_ACTIVE", Message: "only active projects can graduate"}
	case errors.Is(err, lifecycle.ErrPoolFull):
		return &APIError{Code: "POOL_FULL", Message: "all slots are occupied", RecoveryHint: "Graduate a project to free a slot"}
	case errors.Is(err, lifecycle.ErrSlotOccupied):
		return &APIError{Code: "SLOT_OCCUPIED", Message: "requested slot is occupied", RecoveryHint: "Omit the slot to take the lowest free one"}
	case errors.Is(err, lifecycle.ErrAlreadyGraduated):
		return &APIError{Code: "ALREADY_GRADUATED", Message: "project already graduated"}
	case errors.Is(err, slot.ErrInvalidSlot):
		return &APIError{Code: "INVALID_SLOT", Message: fmt.Sprintf("slot number must be between 1 and %d", slot.Capacity)}
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "concurrent modification detected", RecoveryHint: "Retry the operation"}
	default:
		return &APIError{Code: "STORAGE", Message: err.Error()}
	}
}
