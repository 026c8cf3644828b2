// internal/app/store/notifications/recorder.go
package notificationstore

import (
	"context"
	"fmt"

	"github.com/harvestchapel/rosterd/internal/app/system/notify"
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"go.uber.org/zap"
)

// Recorder is the durable notify.Emitter: it turns staffing events into
// per-user notification documents. Failures are logged and swallowed; a
// notification that could not be written never fails the mutation that
// produced it.
type Recorder struct {
	store *Store
	log   *zap.Logger
}

func NewRecorder(store *Store, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, log: logger}
}

func (r *Recorder) ScheduleCreated(ctx context.Context, ev notify.ScheduleCreated) {
	var batch []models.Notification
	for role, userIDs := range ev.AssignedIDs {
		for _, uid := range userIDs {
			batch = append(batch, models.Notification{
				UserID:     uid,
				ScheduleID: ev.ScheduleID,
				Role:       role,
				EventID:    ev.EventID,
				Message:    fmt.Sprintf("You have been assigned to %s on %s.", role, ev.Date),
				CreatedAt:  ev.OccurredAt,
			})
		}
	}
	if err := r.store.InsertMany(ctx, batch); err != nil {
		r.log.Warn("notification fan-out failed",
			zap.String("event_id", ev.EventID), zap.Error(err))
	}
}

func (r *Recorder) ScheduleUpdated(ctx context.Context, ev notify.ScheduleUpdated) {
	changed := make(map[string]bool, len(ev.ChangedRoles))
	for _, role := range ev.ChangedRoles {
		changed[role] = true
	}

	// Only people in roles whose membership changed get a fresh message;
	// untouched assignees were already notified at creation.
	var batch []models.Notification
	for role, userIDs := range ev.AssignedIDs {
		if !changed[role] {
			continue
		}
		for _, uid := range userIDs {
			batch = append(batch, models.Notification{
				UserID:     uid,
				ScheduleID: ev.ScheduleID,
				Role:       role,
				EventID:    ev.EventID,
				Message:    fmt.Sprintf("You have been assigned to %s on %s (schedule updated).", role, ev.Date),
				CreatedAt:  ev.OccurredAt,
			})
		}
	}
	if err := r.store.InsertMany(ctx, batch); err != nil {
		r.log.Warn("notification fan-out failed",
			zap.String("event_id", ev.EventID), zap.Error(err))
	}
}

func (r *Recorder) ScheduleDeleted(ctx context.Context, ev notify.ScheduleDeleted) {
	// Stale messages pointing at a deleted schedule would dead-end; drop them.
	if _, err := r.store.DeleteBySchedule(ctx, ev.ScheduleID); err != nil {
		r.log.Warn("notification cleanup failed",
			zap.String("event_id", ev.EventID), zap.Error(err))
	}
}

func (r *Recorder) ResponseRecorded(ctx context.Context, ev notify.ResponseRecorded) {
	if ev.NotifyID.IsZero() {
		return
	}
	msg := fmt.Sprintf("A volunteer %s the %s assignment on %s.", ev.Status, ev.Role, ev.Date)
	if ev.Reason != "" {
		msg = fmt.Sprintf("%s Reason: %s", msg, ev.Reason)
	}
	_, err := r.store.Insert(ctx, models.Notification{
		UserID:     ev.NotifyID,
		ScheduleID: ev.ScheduleID,
		Role:       ev.Role,
		EventID:    ev.EventID,
		Message:    msg,
		CreatedAt:  ev.OccurredAt,
	})
	if err != nil {
		r.log.Warn("response notification failed",
			zap.String("event_id", ev.EventID), zap.Error(err))
	}
}
