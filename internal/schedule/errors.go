package schedule

import (
	"fmt"

	"clinician-scheduler-server/internal/models"
)

// ValidationError reports malformed input at creation or edit time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransition reports an attempted status change that violates the
// transition table. It carries the attempted operation and the item's
// current status so callers can render a specific message.
type InvalidTransition struct {
	Op      Operation
	Current models.ItemStatus
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s an item with status %q", e.Op, e.Current)
}

// EditRejected reports an attempted field edit on a completed or
// cancelled item.
type EditRejected struct {
	Current models.ItemStatus
}

func (e *EditRejected) Error() string {
	return fmt.Sprintf("cannot edit an item with status %q", e.Current)
}
