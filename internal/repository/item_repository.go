package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/upkeep-app/upkeep/internal/models"
)

type ItemRepository interface {
	// ListDueBetween returns items whose maintenance due date falls in
	// [from, to], ordered by due date ascending.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Item, error)
	// ListOverdue returns items whose maintenance due date is strictly
	// before the given day, ordered by due date ascending.
	ListOverdue(ctx context.Context, before time.Time) ([]models.Item, error)
}

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

// dateArg binds a day boundary against the maintenance_due DATE column.
// Passing the calendar date as text keeps the comparison independent of the
// database session time zone; a timestamp parameter would be cast to a date
// in the session zone and could shift the boundary by a day.
func dateArg(t time.Time) string {
	return t.Format("2006-01-02")
}

func (r *itemRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]models.Item, error) {
	const query = `
		SELECT id, name, maintenance_due, last_notified_at
		FROM items
		WHERE maintenance_due >= $1 AND maintenance_due <= $2
		ORDER BY maintenance_due ASC
	`
	rows, err := r.db.QueryContext(ctx, query, dateArg(from), dateArg(to))
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func (r *itemRepository) ListOverdue(ctx context.Context, before time.Time) ([]models.Item, error) {
	const query = `
		SELECT id, name, maintenance_due, last_notified_at
		FROM items
		WHERE maintenance_due < $1
		ORDER BY maintenance_due ASC
	`
	rows, err := r.db.QueryContext(ctx, query, dateArg(before))
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func scanItems(rows *sql.Rows) ([]models.Item, error) {
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var (
			item         models.Item
			lastNotified sql.NullTime
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.MaintenanceDue, &lastNotified); err != nil {
			return nil, err
		}
		if lastNotified.Valid {
			t := lastNotified.Time
			item.LastNotifiedAt = &t
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
