package tasks

import (
	"fmt"

	"github.com/desertthunder/rolodex/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ValidateRows Phase = iota
	CreateContacts
	ExportContacts
)

func (p Phase) String() string {
	switch p {
	case ValidateRows:
		return "validate_rows"
	case CreateContacts:
		return "create_contacts"
	case ExportContacts:
		return "export_contacts"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func validatedUpdate(total, invalid int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ValidateRows,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Validated %d rows (%d invalid)", total, invalid),
	}
}

func createdUpdate(step, total int, c models.Contact) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateContacts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (ID: %d)", step, total, c.Name, c.ID),
		Data:    c,
	}
}

func createFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateContacts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func exportCompletedUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportContacts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, path),
	}
}

func exportFailedUpdate(step, total int, format string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportContacts,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, format, err),
	}
}
