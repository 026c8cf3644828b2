// internal/app/features/notifications/handler.go
package notifications

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	notificationstore "github.com/harvestchapel/rosterd/internal/app/store/notifications"
	"github.com/harvestchapel/rosterd/internal/app/system/authz"
	"github.com/harvestchapel/rosterd/internal/app/system/httpapi"
	"github.com/harvestchapel/rosterd/internal/app/system/timeouts"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves each user's own notification feed.
type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

func NewHandler(notifications *notificationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Notifications: notifications, Log: logger}
}

// HandleList serves GET /?limit=N, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			httpapi.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list notifications")
	defer cancel()

	list, err := h.Notifications.ListByUser(ctx, userID, limit)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, list)
}

// HandleMarkRead serves PATCH /{id}/read. Owner only; anyone else's
// notification reads as not found.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.FromError(w, h.Log, &roster.ValidationError{Field: "id", Msg: "malformed notification id"})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "mark notification read")
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id, userID); err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
