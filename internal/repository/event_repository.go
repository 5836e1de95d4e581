package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/upkeep-app/upkeep/internal/models"
)

type MaintenanceEventRepository interface {
	// ListCompletedBetween returns events completed within [from, to],
	// ordered by completion time descending, with the owning item's name.
	ListCompletedBetween(ctx context.Context, from, to time.Time) ([]models.MaintenanceEvent, error)
}

type maintenanceEventRepository struct {
	db *sql.DB
}

func NewMaintenanceEventRepository(db *sql.DB) MaintenanceEventRepository {
	return &maintenanceEventRepository{db: db}
}

func (r *maintenanceEventRepository) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]models.MaintenanceEvent, error) {
	const query = `
		SELECT e.id, e.item_id, i.name, e.description, e.completed_at
		FROM maintenance_events e
		JOIN items i ON i.id = e.item_id
		WHERE e.completed_at >= $1 AND e.completed_at <= $2
		ORDER BY e.completed_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.MaintenanceEvent
	for rows.Next() {
		var event models.MaintenanceEvent
		if err := rows.Scan(&event.ID, &event.ItemID, &event.ItemName, &event.Description, &event.CompletedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
