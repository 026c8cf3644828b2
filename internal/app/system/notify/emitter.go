// internal/app/system/notify/emitter.go
package notify

import "context"

// Emitter consumes the domain events produced by schedule and response
// mutations. Implementations decide what delivery means: logging, durable
// per-user notification documents, or an external transport. Emitting is
// best-effort from the caller's point of view; a failed delivery never fails
// the mutation that produced the event.
type Emitter interface {
	ScheduleCreated(ctx context.Context, ev ScheduleCreated)
	ScheduleUpdated(ctx context.Context, ev ScheduleUpdated)
	ScheduleDeleted(ctx context.Context, ev ScheduleDeleted)
	ResponseRecorded(ctx context.Context, ev ResponseRecorded)
}

// Fanout forwards every event to each wrapped emitter in order.
type Fanout []Emitter

func (f Fanout) ScheduleCreated(ctx context.Context, ev ScheduleCreated) {
	for _, e := range f {
		e.ScheduleCreated(ctx, ev)
	}
}

func (f Fanout) ScheduleUpdated(ctx context.Context, ev ScheduleUpdated) {
	for _, e := range f {
		e.ScheduleUpdated(ctx, ev)
	}
}

func (f Fanout) ScheduleDeleted(ctx context.Context, ev ScheduleDeleted) {
	for _, e := range f {
		e.ScheduleDeleted(ctx, ev)
	}
}

func (f Fanout) ResponseRecorded(ctx context.Context, ev ResponseRecorded) {
	for _, e := range f {
		e.ResponseRecorded(ctx, ev)
	}
}
