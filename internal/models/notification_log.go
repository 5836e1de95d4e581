package models

import "time"

type NotificationStatus string

const (
	NotificationStatusDue       NotificationStatus = "due"
	NotificationStatusOverdue   NotificationStatus = "overdue"
	NotificationStatusCompleted NotificationStatus = "completed"
)

// NotificationLog is the append-only audit trail of what the batcher sent.
// due/overdue rows reference an item, completed rows reference an event.
type NotificationLog struct {
	ID      string             `json:"id" db:"id"`
	ItemID  *string            `json:"item_id,omitempty" db:"item_id"`
	EventID *string            `json:"event_id,omitempty" db:"event_id"`
	Status  NotificationStatus `json:"status" db:"status"`
	SentAt  time.Time          `json:"sent_at" db:"sent_at"`
}
