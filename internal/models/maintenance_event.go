package models

import "time"

// MaintenanceEvent records a completed piece of maintenance work on an item.
// Rows are created by the CRUD layer and immutable afterward.
type MaintenanceEvent struct {
	ID          string    `json:"id" db:"id"`
	ItemID      string    `json:"item_id" db:"item_id"`
	ItemName    string    `json:"item_name"` // populated by the read join, not a column
	Description string    `json:"description" db:"description"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}
