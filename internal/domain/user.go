package domain

import "time"

type Role string

const (
	RoleCollaborator  Role = "COLLABORATOR"
	RoleManager       Role = "MANAGER"
	RoleAdministrator Role = "ADMINISTRATOR"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCollaborator, RoleManager, RoleAdministrator:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	TeamID       *int64
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection returned to clients. The password hash
// never leaves the service layer.
type PublicUser struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   Role       `json:"role"`
	TeamID *int64     `json:"team_id,omitempty"`
	Status UserStatus `json:"status"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		TeamID: u.TeamID,
		Status: u.Status,
	}
}
