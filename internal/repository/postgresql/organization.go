package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/user"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
)

type organizationRepository struct {
	db *database.DB
}

// Create implements user.OrganizationRepository.
func (o *organizationRepository) Create(ctx context.Context, org user.Organization) (user.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO organizations (name, timezone)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, org.Name, org.Timezone).
		Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return user.Organization{}, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// GetByID implements user.OrganizationRepository.
func (o *organizationRepository) GetByID(ctx context.Context, id string) (user.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, timezone, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org user.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Timezone, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Organization{}, user.ErrOrganizationNotFound
		}
		return user.Organization{}, fmt.Errorf("failed to get organization by ID: %w", err)
	}

	return org, nil
}

func NewOrganizationRepository(db *database.DB) user.OrganizationRepository {
	return &organizationRepository{db: db}
}
