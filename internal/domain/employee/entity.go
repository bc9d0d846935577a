package employee

import "time"

type Employee struct {
	ID             string
	OrganizationID string
	UserID         *string
	FullName       string
	Email          string
	Department     string
	Position       *string
	EmploymentType string
	Status         string
	HiredAt        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
