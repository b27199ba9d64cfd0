package domain

import "time"

type Team struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ManagerID   *int64        `json:"manager_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	Members     []*PublicUser `json:"members,omitempty"`
}
