package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/schedule"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

// Create implements schedule.ShiftAssignmentRepository.
func (s *shiftAssignmentRepository) Create(ctx context.Context, assignment schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_assignments (organization_id, employee_id, shift_template_id, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.OrganizationID,
		assignment.EmployeeID,
		assignment.ShiftTemplateID,
		assignment.Date,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		return schedule.ShiftAssignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return assignment, nil
}

// GetByEmployeeAndDate implements schedule.ShiftAssignmentRepository.
func (s *shiftAssignmentRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*schedule.ShiftAssignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT sa.id, sa.organization_id, sa.employee_id, sa.shift_template_id, sa.date,
			   sa.created_at, sa.updated_at,
			   st.name AS template_name
		FROM shift_assignments sa
		LEFT JOIN shift_templates st ON st.id = sa.shift_template_id
		WHERE sa.employee_id = $1
		  AND sa.date = $2
		  AND sa.organization_id = $3
		LIMIT 1
	`

	var assignment schedule.ShiftAssignment
	err := q.QueryRow(ctx, query, employeeID, date, orgID).Scan(
		&assignment.ID, &assignment.OrganizationID, &assignment.EmployeeID,
		&assignment.ShiftTemplateID, &assignment.Date,
		&assignment.CreatedAt, &assignment.UpdatedAt,
		&assignment.TemplateName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // unscheduled day, not an error
		}
		return nil, fmt.Errorf("failed to get shift assignment by employee and date: %w", err)
	}

	return &assignment, nil
}

// List implements schedule.ShiftAssignmentRepository.
func (s *shiftAssignmentRepository) List(ctx context.Context, filter schedule.AssignmentFilter, orgID string) ([]schedule.ShiftAssignment, int64, error) {
	q := GetQuerier(ctx, s.db)

	baseWhere := "sa.organization_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND sa.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND sa.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND sa.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM shift_assignments sa WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shift assignments: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT sa.id, sa.organization_id, sa.employee_id, sa.shift_template_id, sa.date,
			   sa.created_at, sa.updated_at,
			   st.name AS template_name,
			   e.full_name AS employee_name
		FROM shift_assignments sa
		LEFT JOIN shift_templates st ON st.id = sa.shift_template_id
		LEFT JOIN employees e ON e.id = sa.employee_id
		WHERE %s
		ORDER BY sa.date DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []schedule.ShiftAssignment
	for rows.Next() {
		var assignment schedule.ShiftAssignment
		err := rows.Scan(
			&assignment.ID, &assignment.OrganizationID, &assignment.EmployeeID,
			&assignment.ShiftTemplateID, &assignment.Date,
			&assignment.CreatedAt, &assignment.UpdatedAt,
			&assignment.TemplateName, &assignment.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, total, nil
}

// Delete implements schedule.ShiftAssignmentRepository.
func (s *shiftAssignmentRepository) Delete(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, s.db)

	query := `DELETE FROM shift_assignments WHERE id = $1 AND organization_id = $2`

	commandTag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftAssignmentNotFound
	}

	return nil
}

func NewShiftAssignmentRepository(db *database.DB) schedule.ShiftAssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}
