package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/employee"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			organization_id, user_id, full_name, email, department,
			position, employment_type, status, hired_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.OrganizationID,
		emp.UserID,
		emp.FullName,
		emp.Email,
		emp.Department,
		emp.Position,
		emp.EmploymentType,
		emp.Status,
		emp.HiredAt,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string, orgID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, organization_id, user_id, full_name, email, department,
			   position, employment_type, status, hired_at, created_at, updated_at
		FROM employees
		WHERE id = $1 AND organization_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&emp.ID, &emp.OrganizationID, &emp.UserID, &emp.FullName, &emp.Email, &emp.Department,
		&emp.Position, &emp.EmploymentType, &emp.Status, &emp.HiredAt, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepository) GetByEmail(ctx context.Context, email string, orgID string) (*employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, organization_id, user_id, full_name, email, department,
			   position, employment_type, status, hired_at, created_at, updated_at
		FROM employees
		WHERE LOWER(email) = LOWER($1) AND organization_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, email, orgID).Scan(
		&emp.ID, &emp.OrganizationID, &emp.UserID, &emp.FullName, &emp.Email, &emp.Department,
		&emp.Position, &emp.EmploymentType, &emp.Status, &emp.HiredAt, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no existing employee with this email
		}
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return &emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter, orgID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	baseWhere := "organization_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.Name != nil && *filter.Name != "" {
		baseWhere += fmt.Sprintf(" AND full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM employees WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	orderByField := "full_name"
	switch filter.SortBy {
	case "department":
		orderByField = "department"
	case "hired_at":
		orderByField = "hired_at"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, organization_id, user_id, full_name, email, department,
			   position, employment_type, status, hired_at, created_at, updated_at
		FROM employees
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.OrganizationID, &emp.UserID, &emp.FullName, &emp.Email, &emp.Department,
			&emp.Position, &emp.EmploymentType, &emp.Status, &emp.HiredAt, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET full_name = $1, department = $2, position = $3,
			employment_type = $4, status = $5, updated_at = NOW()
		WHERE id = $6 AND organization_id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		emp.FullName, emp.Department, emp.Position,
		emp.EmploymentType, emp.Status, emp.ID, emp.OrganizationID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// GetActiveByOrgID implements employee.EmployeeRepository.
func (e *employeeRepository) GetActiveByOrgID(ctx context.Context, orgID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, organization_id, user_id, full_name, email, department,
			   position, employment_type, status, hired_at, created_at, updated_at
		FROM employees
		WHERE organization_id = $1 AND status = 'active'
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.OrganizationID, &emp.UserID, &emp.FullName, &emp.Email, &emp.Department,
			&emp.Position, &emp.EmploymentType, &emp.Status, &emp.HiredAt, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
