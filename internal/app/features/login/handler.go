// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"

	userstore "github.com/harvestchapel/rosterd/internal/app/store/users"
	"github.com/harvestchapel/rosterd/internal/app/system/auth"
	"github.com/harvestchapel/rosterd/internal/app/system/authz"
	"github.com/harvestchapel/rosterd/internal/app/system/httpapi"
	"github.com/harvestchapel/rosterd/internal/app/system/timeouts"
	"github.com/harvestchapel/rosterd/internal/domain/roster"
	"go.uber.org/zap"
)

// Handler serves session login, logout, and the current-user probe.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// HandleLogin serves POST /login. A wrong username and a wrong password are
// indistinguishable to the caller.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login lookup")
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			httpapi.Error(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		httpapi.FromError(w, h.Log, err)
		return
	}
	if !h.Users.VerifyPassword(u, req.Password) {
		httpapi.Error(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if u.Status != "active" {
		httpapi.Error(w, http.StatusForbidden, "account is disabled")
		return
	}

	if err := auth.SignIn(w, r, auth.SessionUser{
		ID:   u.ID.Hex(),
		Name: u.FullName,
		Role: u.Role,
	}); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role))
	httpapi.WriteJSON(w, http.StatusOK, newSessionView(u))
}

// HandleLogout serves POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("session clear failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe serves GET /me for the signed-in user. The record is re-read so a
// rename or role change shows up without a fresh login.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpapi.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "me lookup")
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		httpapi.FromError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, newSessionView(u))
}
