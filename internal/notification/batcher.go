package notification

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/upkeep-app/upkeep/internal/models"
	"github.com/upkeep-app/upkeep/internal/repository"
)

// Windows holds the three time windows driving one cycle.
type Windows struct {
	// AlertWindowDays is how many days ahead a due date counts as "due soon".
	AlertWindowDays int
	// CompletedWindow is how far back a completed event is still "recent".
	CompletedWindow time.Duration
	// RepeatWindow is the minimum time between two notifications of the
	// same status for the same subject.
	RepeatWindow time.Duration
}

// Batcher computes the subjects needing notification, suppresses repeats
// against the notification log, sends one batched summary and records what
// was sent.
type Batcher struct {
	// mu serializes cycles: the scheduler and the manual ops trigger share
	// one batcher, and a later cycle must see the log rows of an earlier one.
	mu         sync.Mutex
	items      repository.ItemRepository
	events     repository.MaintenanceEventRepository
	logs       repository.NotificationLogRepository
	mailer     Mailer
	recipients []string
	windows    Windows
	logger     zerolog.Logger
	now        func() time.Time
}

func NewBatcher(
	items repository.ItemRepository,
	events repository.MaintenanceEventRepository,
	logs repository.NotificationLogRepository,
	mailer Mailer,
	recipients []string,
	windows Windows,
	logger zerolog.Logger,
) *Batcher {
	return &Batcher{
		items:      items,
		events:     events,
		logs:       logs,
		mailer:     mailer,
		recipients: recipients,
		windows:    windows,
		logger:     logger.With().Str("component", "notification_batcher").Logger(),
		now:        time.Now,
	}
}

// RunCycle executes one notification cycle. Delivery failures are logged and
// swallowed so the next cycle retries the same candidates; repository
// failures propagate to the caller, which treats the cycle as skipped. Log
// rows are written only after a fully successful send, in one transaction.
// At most one cycle is in flight at a time; concurrent triggers queue.
func (b *Batcher) RunCycle(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := today.AddDate(0, 0, b.windows.AlertWindowDays)

	dueSoon, err := b.items.ListDueBetween(ctx, today, windowEnd)
	if err != nil {
		return errors.Wrap(err, "list due-soon items")
	}
	overdue, err := b.items.ListOverdue(ctx, today)
	if err != nil {
		return errors.Wrap(err, "list overdue items")
	}
	completed, err := b.events.ListCompletedBetween(ctx, now.Add(-b.windows.CompletedWindow), now)
	if err != nil {
		return errors.Wrap(err, "list completed events")
	}

	repeatStart := now.Add(-b.windows.RepeatWindow)
	dueLogged, err := b.logs.ItemIDsLoggedSince(ctx, models.NotificationStatusDue, repeatStart)
	if err != nil {
		return errors.Wrap(err, "list recently notified due items")
	}
	overdueLogged, err := b.logs.ItemIDsLoggedSince(ctx, models.NotificationStatusOverdue, repeatStart)
	if err != nil {
		return errors.Wrap(err, "list recently notified overdue items")
	}
	eventsLogged, err := b.logs.EventIDsLoggedSince(ctx, repeatStart)
	if err != nil {
		return errors.Wrap(err, "list recently notified events")
	}

	report := Report{
		Overdue:   dropNotifiedItems(overdue, overdueLogged),
		DueSoon:   dropNotifiedItems(dueSoon, dueLogged),
		Completed: dropNotifiedEvents(completed, eventsLogged),
	}

	if report.Empty() {
		b.logger.Debug().Msg("no subjects to notify, skipping cycle")
		return nil
	}
	if len(b.recipients) == 0 {
		b.logger.Info().Msg("no recipients configured, skipping delivery")
		return nil
	}

	subject, body := ComposeSummary(report)
	if err := b.mailer.Send(ctx, b.recipients, subject, body); err != nil {
		b.logger.Warn().Err(err).Msg("failed to deliver maintenance summary")
		return nil
	}

	record := repository.RecordCycleParams{SentAt: now}
	for _, item := range report.Overdue {
		record.Items = append(record.Items, repository.ItemNotification{
			ItemID: item.ID,
			Status: models.NotificationStatusOverdue,
		})
	}
	for _, item := range report.DueSoon {
		record.Items = append(record.Items, repository.ItemNotification{
			ItemID: item.ID,
			Status: models.NotificationStatusDue,
		})
	}
	for _, event := range report.Completed {
		record.EventIDs = append(record.EventIDs, event.ID)
	}
	if err := b.logs.RecordCycle(ctx, record); err != nil {
		return errors.Wrap(err, "record notification cycle")
	}

	b.logger.Info().
		Int("overdue", len(report.Overdue)).
		Int("due_soon", len(report.DueSoon)).
		Int("completed", len(report.Completed)).
		Strs("recipients", b.recipients).
		Msg("maintenance summary sent")
	return nil
}

func dropNotifiedItems(items []models.Item, logged map[string]struct{}) []models.Item {
	if len(logged) == 0 {
		return items
	}
	var kept []models.Item
	for _, item := range items {
		if _, ok := logged[item.ID]; ok {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func dropNotifiedEvents(events []models.MaintenanceEvent, logged map[string]struct{}) []models.MaintenanceEvent {
	if len(logged) == 0 {
		return events
	}
	var kept []models.MaintenanceEvent
	for _, event := range events {
		if _, ok := logged[event.ID]; ok {
			continue
		}
		kept = append(kept, event)
	}
	return kept
}
