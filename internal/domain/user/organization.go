package user

import (
	"context"
	"time"
)

// Organization is the tenant boundary. Every employee, schedule, attendance
// and leave row carries its organization's ID and every query filters on it.
type Organization struct {
	ID        string
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrganizationRepository interface {
	Create(ctx context.Context, org Organization) (Organization, error)
	GetByID(ctx context.Context, id string) (Organization, error)
}
