package model

import "time"

type Role string

const (
	RoleSystemAdmin    Role = "system_admin"
	RoleProjectOwner   Role = "project_owner"
	RoleProjectManager Role = "project_manager"
	RoleTeamMember     Role = "team_member"
	RoleViewer         Role = "viewer"
)

var Roles = []Role{RoleSystemAdmin, RoleProjectOwner, RoleProjectManager, RoleTeamMember, RoleViewer}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
