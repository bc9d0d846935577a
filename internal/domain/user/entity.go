package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleTeamLead Role = "team_lead"
	RoleEmployee Role = "employee"
)

// IsManagement reports whether the role may approve attendance and leave.
func (r Role) IsManagement() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleTeamLead
}

type User struct {
	ID             string
	OrganizationID string
	EmployeeID     *string
	Email          string
	PasswordHash   string
	Role           Role
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
