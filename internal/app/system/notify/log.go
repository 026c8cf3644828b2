// internal/app/system/notify/log.go
package notify

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Log is an Emitter that writes every event as a structured log line. It is
// always part of the fan-out so operators can trace staffing activity even
// when no durable recorder is wired.
type Log struct {
	L *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{L: logger}
}

func (l *Log) ScheduleCreated(ctx context.Context, ev ScheduleCreated) {
	l.L.Info("schedule created",
		zap.String("event_id", ev.EventID),
		zap.String("schedule_id", ev.ScheduleID.Hex()),
		zap.String("date", ev.Date),
		zap.String("day_type", ev.DayType))
}

func (l *Log) ScheduleUpdated(ctx context.Context, ev ScheduleUpdated) {
	l.L.Info("schedule updated",
		zap.String("event_id", ev.EventID),
		zap.String("schedule_id", ev.ScheduleID.Hex()),
		zap.String("date", ev.Date),
		zap.String("day_type", ev.DayType),
		zap.String("changed_roles", strings.Join(ev.ChangedRoles, ",")))
}

func (l *Log) ScheduleDeleted(ctx context.Context, ev ScheduleDeleted) {
	l.L.Info("schedule deleted",
		zap.String("event_id", ev.EventID),
		zap.String("schedule_id", ev.ScheduleID.Hex()))
}

func (l *Log) ResponseRecorded(ctx context.Context, ev ResponseRecorded) {
	fields := []zap.Field{
		zap.String("event_id", ev.EventID),
		zap.String("schedule_id", ev.ScheduleID.Hex()),
		zap.String("role", ev.Role),
		zap.String("user_id", ev.UserID.Hex()),
		zap.String("status", ev.Status),
	}
	if ev.Reason != "" {
		fields = append(fields, zap.String("reason", ev.Reason))
	}
	l.L.Info("response recorded", fields...)
}
