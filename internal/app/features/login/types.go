// internal/app/features/login/types.go
package login

import (
	"github.com/harvestchapel/rosterd/internal/domain/models"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// sessionView is the caller-facing identity returned by login and /me.
type sessionView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func newSessionView(u *models.User) sessionView {
	return sessionView{
		ID:       u.ID.Hex(),
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
