package notification

import (
	"fmt"
	"strings"

	"github.com/upkeep-app/upkeep/internal/models"
)

const (
	dueDateFormat   = "2006-01-02"
	completedFormat = "2006-01-02 15:04 MST"
)

// Report holds the subjects that survived window selection and repeat
// suppression for one cycle.
type Report struct {
	Overdue   []models.Item
	DueSoon   []models.Item
	Completed []models.MaintenanceEvent
}

func (r Report) Empty() bool {
	return len(r.Overdue) == 0 && len(r.DueSoon) == 0 && len(r.Completed) == 0
}

// ComposeSummary renders the single plain-text message for a cycle.
func ComposeSummary(r Report) (subject, body string) {
	subject = fmt.Sprintf("Maintenance summary: %d overdue, %d due soon, %d completed",
		len(r.Overdue), len(r.DueSoon), len(r.Completed))

	if r.Empty() {
		return subject, "No maintenance updates.\n"
	}

	b := strings.Builder{}
	if len(r.Overdue) > 0 {
		b.WriteString("Overdue:\n")
		for _, item := range r.Overdue {
			b.WriteString(fmt.Sprintf("  - %s (due %s)\n", item.Name, item.MaintenanceDue.Format(dueDateFormat)))
		}
		b.WriteString("\n")
	}
	if len(r.DueSoon) > 0 {
		b.WriteString("Due soon:\n")
		for _, item := range r.DueSoon {
			b.WriteString(fmt.Sprintf("  - %s (due %s)\n", item.Name, item.MaintenanceDue.Format(dueDateFormat)))
		}
		b.WriteString("\n")
	}
	if len(r.Completed) > 0 {
		b.WriteString("Recently completed:\n")
		for _, event := range r.Completed {
			b.WriteString(fmt.Sprintf("  - %s: %s (completed %s)\n",
				event.ItemName, event.Description, event.CompletedAt.Format(completedFormat)))
		}
	}

	return subject, b.String()
}
