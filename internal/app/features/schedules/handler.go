// internal/app/features/schedules/handler.go
package schedules

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	schedulestore "github.com/harvestchapel/rosterd/internal/app/store/schedules"
	"github.com/harvestchapel/rosterd/internal/app/system/authz"
	"github.com/harvestchapel/rosterd/internal/app/system/httpapi"
	"github.com/harvestchapel/rosterd/internal/app/system/notify"
	"github.com/harvestchapel/rosterd/internal/app/system/timeouts"
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the schedule lifecycle and the response flow.
type Handler struct {
	Schedules *schedulestore.Store
	Emitter   notify.Emitter
	Log       *zap.Logger

	sanitize *bluemonday.Policy
}

func NewHandler(schedules *schedulestore.Store, emitter notify.Emitter, logger *zap.Logger) *Handler {
	return &Handler{
		Schedules: schedules,
		Emitter:   emitter,
		Log:       logger,
		sanitize:  bluemonday.StrictPolicy(),
	}
}

// HandleList serves GET /. Every signed-in user sees the full roster.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list schedules")
	defer cancel()

	list, err := h.Schedules.List(ctx)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	views := make([]scheduleView, 0, len(list))
	for _, sc := range list {
		views = append(views, newScheduleView(sc, nil))
	}
	httpapi.WriteJSON(w, http.StatusOK, views)
}

// HandleGet serves GET /{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get schedule")
	defer cancel()

	sc, err := h.Schedules.GetByID(ctx, id)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, newScheduleView(*sc, nil))
}

// HandleCreate serves POST /. Admin only (enforced in routes).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req scheduleRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	supplied, err := toAssignments(req.Assignments)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create schedule")
	defer cancel()

	res, err := h.Schedules.Create(ctx, req.Date, req.DayType, supplied, callerID)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	h.Emitter.ScheduleCreated(ctx, notify.ScheduleCreated{
		Meta:        notify.NewMeta(res.Schedule.CreatedAt),
		ScheduleID:  res.Schedule.ID,
		Date:        res.Schedule.Date,
		DayType:     res.Schedule.DayType,
		AssignedIDs: assignedIDs(res.Schedule.Assignments),
	})

	httpapi.WriteJSON(w, http.StatusCreated, newScheduleView(res.Schedule, res.Warnings))
}

// HandleUpdate serves PUT /{id}: a full replacement of date, day type, and
// assignment membership. Responses for retained (role, user) pairs survive.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	var req scheduleRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	supplied, err := toAssignments(req.Assignments)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "update schedule")
	defer cancel()

	res, err := h.Schedules.Update(ctx, id, req.Date, req.DayType, supplied)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	h.Emitter.ScheduleUpdated(ctx, notify.ScheduleUpdated{
		Meta:         notify.NewMeta(res.Schedule.UpdatedAt),
		ScheduleID:   res.Schedule.ID,
		Date:         res.Schedule.Date,
		DayType:      res.Schedule.DayType,
		ChangedRoles: res.ChangedRoles,
		AssignedIDs:  assignedIDs(res.Schedule.Assignments),
	})

	httpapi.WriteJSON(w, http.StatusOK, newScheduleView(res.Schedule, res.Warnings))
}

// HandleDelete serves DELETE /{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete schedule")
	defer cancel()

	sc, err := h.Schedules.GetByID(ctx, id)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}
	if err := h.Schedules.Delete(ctx, id); err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	h.Emitter.ScheduleDeleted(ctx, notify.ScheduleDeleted{
		Meta:       notify.NewMeta(sc.UpdatedAt),
		ScheduleID: sc.ID,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleResponse serves POST /{id}/response: the caller answers for their own
// slot in one role. One shot; accepted or declined only.
func (h *Handler) HandleResponse(w http.ResponseWriter, r *http.Request) {
	_, _, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	var req responseRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	role, err := roster.ParseRoleType(req.Role)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}
	status, err := roster.ParseAnswer(req.Status)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}
	// Decline reasons are free text that ends up in other users' clients.
	reason := h.sanitize.Sanitize(strings.TrimSpace(req.Reason))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "record response")
	defer cancel()

	sc, assignment, err := h.Schedules.RecordResponse(ctx, id, role, callerID, status, reason)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	resp := assignment.Responses[callerID.Hex()]
	h.Emitter.ResponseRecorded(ctx, notify.ResponseRecorded{
		Meta:       notify.NewMeta(resp.RecordedAt),
		ScheduleID: sc.ID,
		Role:       role.String(),
		UserID:     callerID,
		Status:     status.String(),
		Reason:     resp.Reason,
		NotifyID:   sc.CreatedBy,
		Date:       sc.Date,
	})

	httpapi.WriteJSON(w, http.StatusOK, responseView{
		ScheduleID: sc.ID,
		Version:    sc.Version,
		Assignment: *assignment,
	})
}

func pathID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, &roster.ValidationError{Field: "id", Msg: "malformed schedule id"}
	}
	return id, nil
}

func assignedIDs(assignments []models.Assignment) map[string][]primitive.ObjectID {
	out := make(map[string][]primitive.ObjectID, len(assignments))
	for _, a := range assignments {
		if len(a.UserIDs) == 0 {
			continue
		}
		out[a.Role] = a.UserIDs
	}
	return out
}
