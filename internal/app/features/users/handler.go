// internal/app/features/users/handler.go
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/harvestchapel/rosterd/internal/app/store/users"
	"github.com/harvestchapel/rosterd/internal/app/system/authz"
	"github.com/harvestchapel/rosterd/internal/app/system/httpapi"
	"github.com/harvestchapel/rosterd/internal/app/system/timeouts"
	"github.com/harvestchapel/rosterd/internal/domain/models"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the user directory. All routes are admin only.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// HandleList serves GET /.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	list, err := h.Users.List(ctx)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, list)
}

// HandleCreate serves POST /.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create user")
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
	}, req.Password)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	h.Log.Info("user created",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role))
	httpapi.WriteJSON(w, http.StatusCreated, u)
}

// HandleDelete serves DELETE /{id}. An admin cannot delete themselves; that
// would strand the directory without a way back in.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.FromError(w, h.Log, &roster.ValidationError{Field: "id", Msg: "malformed user id"})
		return
	}
	if id == callerID {
		httpapi.Error(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete user")
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
