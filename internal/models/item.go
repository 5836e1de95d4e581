package models

import "time"

// Item is a tracked inventory item. Rows are owned by the inventory CRUD
// layer; the notifier only reads them and updates LastNotifiedAt after a
// successful send.
type Item struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	MaintenanceDue time.Time  `json:"maintenance_due" db:"maintenance_due"`
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty" db:"last_notified_at"`
}
