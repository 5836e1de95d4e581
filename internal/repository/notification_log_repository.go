package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/upkeep-app/upkeep/internal/models"
)

// ItemNotification names one item that was included in a sent summary and
// the status it was reported under.
type ItemNotification struct {
	ItemID string
	Status models.NotificationStatus
}

// RecordCycleParams describes everything a successfully delivered cycle
// needs to persist.
type RecordCycleParams struct {
	SentAt   time.Time
	Items    []ItemNotification
	EventIDs []string
}

type NotificationLogRepository interface {
	// ItemIDsLoggedSince returns the ids of items that already have a log
	// row with the given status sent at or after the given time.
	ItemIDsLoggedSince(ctx context.Context, status models.NotificationStatus, since time.Time) (map[string]struct{}, error)
	// EventIDsLoggedSince returns the ids of events that already have a log
	// row of any status sent at or after the given time.
	EventIDsLoggedSince(ctx context.Context, since time.Time) (map[string]struct{}, error)
	// RecordCycle inserts one log row per notified subject and stamps
	// last_notified_at on every notified item, all in one transaction.
	RecordCycle(ctx context.Context, params RecordCycleParams) error
}

type notificationLogRepository struct {
	db *sql.DB
}

func NewNotificationLogRepository(db *sql.DB) NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

func (r *notificationLogRepository) ItemIDsLoggedSince(ctx context.Context, status models.NotificationStatus, since time.Time) (map[string]struct{}, error) {
	const query = `
		SELECT item_id
		FROM notification_logs
		WHERE item_id IS NOT NULL AND status = $1 AND sent_at >= $2
	`
	rows, err := r.db.QueryContext(ctx, query, status, since)
	if err != nil {
		return nil, err
	}
	return scanIDSet(rows)
}

func (r *notificationLogRepository) EventIDsLoggedSince(ctx context.Context, since time.Time) (map[string]struct{}, error) {
	const query = `
		SELECT event_id
		FROM notification_logs
		WHERE event_id IS NOT NULL AND sent_at >= $1
	`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	return scanIDSet(rows)
}

func (r *notificationLogRepository) RecordCycle(ctx context.Context, params RecordCycleParams) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	const insertItemLog = `
		INSERT INTO notification_logs (id, item_id, status, sent_at)
		VALUES ($1, $2, $3, $4)
	`
	const touchItem = `
		UPDATE items SET last_notified_at = $1 WHERE id = $2
	`
	for _, n := range params.Items {
		if _, err := tx.ExecContext(ctx, insertItemLog, uuid.NewString(), n.ItemID, n.Status, params.SentAt); err != nil {
			return errors.Wrap(err, "insert item notification log")
		}
		if _, err := tx.ExecContext(ctx, touchItem, params.SentAt, n.ItemID); err != nil {
			return errors.Wrap(err, "update item last_notified_at")
		}
	}

	const insertEventLog = `
		INSERT INTO notification_logs (id, event_id, status, sent_at)
		VALUES ($1, $2, $3, $4)
	`
	for _, eventID := range params.EventIDs {
		if _, err := tx.ExecContext(ctx, insertEventLog, uuid.NewString(), eventID, models.NotificationStatusCompleted, params.SentAt); err != nil {
			return errors.Wrap(err, "insert event notification log")
		}
	}

	return errors.Wrap(tx.Commit(), "commit notification logs")
}

func scanIDSet(rows *sql.Rows) (map[string]struct{}, error) {
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
