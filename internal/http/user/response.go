package user

import (
	"time"

	"github.com/dfreire/financas/internal/user"
)

type tokenResponse struct {
	Nome  string `json:"nome"`
	Token string `json:"token"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID          int64      `json:"id"`
	Nome        string     `json:"nome"`
	Email       string     `json:"email"`
	UltimoLogin *time.Time `json:"ultimoLogin,omitempty"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Nome:        u.Name,
		Email:       u.Email,
		UltimoLogin: u.LastLogin,
	}
}

func toResponseList(users []*user.User) []userResponse {
	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	return resp
}
