package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/schedule"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
)

type shiftTemplateRepository struct {
	db *database.DB
}

// Create implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) Create(ctx context.Context, tpl schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_templates (
			organization_id, name, department, start_time, end_time,
			is_overnight, grace_period_minutes, max_break_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		tpl.OrganizationID,
		tpl.Name,
		tpl.Department,
		tpl.StartTime,
		tpl.EndTime,
		tpl.IsOvernight,
		tpl.GracePeriodMinutes,
		tpl.MaxBreakMinutes,
	).Scan(&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}

	return tpl, nil
}

// GetByID implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) GetByID(ctx context.Context, id string, orgID string) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, organization_id, name, department, start_time, end_time,
			   is_overnight, grace_period_minutes, max_break_minutes, created_at, updated_at
		FROM shift_templates
		WHERE id = $1 AND organization_id = $2
	`

	var tpl schedule.ShiftTemplate
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&tpl.ID, &tpl.OrganizationID, &tpl.Name, &tpl.Department, &tpl.StartTime, &tpl.EndTime,
		&tpl.IsOvernight, &tpl.GracePeriodMinutes, &tpl.MaxBreakMinutes, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ShiftTemplate{}, schedule.ErrShiftTemplateNotFound
		}
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to get shift template by ID: %w", err)
	}

	return tpl, nil
}

// List implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) List(ctx context.Context, orgID string) ([]schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, organization_id, name, department, start_time, end_time,
			   is_overnight, grace_period_minutes, max_break_minutes, created_at, updated_at
		FROM shift_templates
		WHERE organization_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []schedule.ShiftTemplate
	for rows.Next() {
		var tpl schedule.ShiftTemplate
		err := rows.Scan(
			&tpl.ID, &tpl.OrganizationID, &tpl.Name, &tpl.Department, &tpl.StartTime, &tpl.EndTime,
			&tpl.IsOvernight, &tpl.GracePeriodMinutes, &tpl.MaxBreakMinutes, &tpl.CreatedAt, &tpl.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, tpl)
	}

	return templates, nil
}

// Update implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) Update(ctx context.Context, tpl schedule.ShiftTemplate) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE shift_templates
		SET name = $1, department = $2, start_time = $3, end_time = $4,
			is_overnight = $5, grace_period_minutes = $6, max_break_minutes = $7,
			updated_at = NOW()
		WHERE id = $8 AND organization_id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		tpl.Name, tpl.Department, tpl.StartTime, tpl.EndTime,
		tpl.IsOvernight, tpl.GracePeriodMinutes, tpl.MaxBreakMinutes,
		tpl.ID, tpl.OrganizationID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ErrShiftTemplateNotFound
		}
		return fmt.Errorf("failed to update shift template: %w", err)
	}

	return nil
}

// Delete implements schedule.ShiftTemplateRepository.
func (s *shiftTemplateRepository) Delete(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, s.db)

	query := `DELETE FROM shift_templates WHERE id = $1 AND organization_id = $2`

	commandTag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete shift template: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftTemplateNotFound
	}

	return nil
}

func NewShiftTemplateRepository(db *database.DB) schedule.ShiftTemplateRepository {
	return &shiftTemplateRepository{db: db}
}
