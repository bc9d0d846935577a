package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/attendance"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			organization_id, employee_id, date, shift_assignment_id,
			clock_in, clock_out, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.OrganizationID,
		att.EmployeeID,
		att.Date,
		att.ShiftAssignmentID,
		att.ClockIn,
		att.ClockOut,
		att.Status,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, orgID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.organization_id, a.employee_id, a.date, a.shift_assignment_id,
			   a.clock_in, a.clock_out, a.status, a.approved_by, a.approved_at,
			   a.rejection_reason, a.created_at, a.updated_at,
			   e.full_name AS employee_name,
			   e.department AS employee_department
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.organization_id = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id, orgID).Scan(
		&att.ID, &att.OrganizationID, &att.EmployeeID, &att.Date, &att.ShiftAssignmentID,
		&att.ClockIn, &att.ClockOut, &att.Status, &att.ApprovedBy, &att.ApprovedAt,
		&att.RejectionReason, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeDepartment,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, organization_id, employee_id, date, shift_assignment_id,
			   clock_in, clock_out, status, approved_by, approved_at,
			   rejection_reason, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		  AND organization_id = $3
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date, orgID).Scan(
		&att.ID, &att.OrganizationID, &att.EmployeeID, &att.Date, &att.ShiftAssignmentID,
		&att.ClockIn, &att.ClockOut, &att.Status, &att.ApprovedBy, &att.ApprovedAt,
		&att.RejectionReason, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no attendance for that day yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, orgID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, organization_id, employee_id, date, shift_assignment_id,
			   clock_in, clock_out, status, approved_by, approved_at,
			   rejection_reason, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND organization_id = $2
		  AND clock_in IS NOT NULL
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, orgID).Scan(
		&att.ID, &att.OrganizationID, &att.EmployeeID, &att.Date, &att.ShiftAssignmentID,
		&att.ClockIn, &att.ClockOut, &att.Status, &att.ApprovedBy, &att.ApprovedAt,
		&att.RejectionReason, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrNotClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if att.ClockIn != nil {
		updates = append(updates, fmt.Sprintf("clock_in = $%d", argIdx))
		args = append(args, att.ClockIn)
		argIdx++
	}
	if att.ClockOut != nil {
		updates = append(updates, fmt.Sprintf("clock_out = $%d", argIdx))
		args = append(args, att.ClockOut)
		argIdx++
	}
	if att.Status != "" {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, att.Status)
		argIdx++
	}
	if att.ApprovedBy != nil {
		updates = append(updates, fmt.Sprintf("approved_by = $%d", argIdx))
		args = append(args, att.ApprovedBy)
		argIdx++
	}
	if att.ApprovedAt != nil {
		updates = append(updates, fmt.Sprintf("approved_at = $%d", argIdx))
		args = append(args, att.ApprovedAt)
		argIdx++
	}
	if att.RejectionReason != nil {
		updates = append(updates, fmt.Sprintf("rejection_reason = $%d", argIdx))
		args = append(args, att.RejectionReason)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for attendance update")
	}

	updates = append(updates, "updated_at = NOW()")

	args = append(args, att.ID)
	idIdx := argIdx
	argIdx++

	args = append(args, att.OrganizationID)

	query := "UPDATE attendances SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND organization_id = $%d RETURNING id", idIdx, argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, orgID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.organization_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND e.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "clock_in_time":
		orderByField = "a.clock_in"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT a.id, a.organization_id, a.employee_id, a.date, a.shift_assignment_id,
			   a.clock_in, a.clock_out, a.status, a.approved_by, a.approved_at,
			   a.rejection_reason, a.created_at, a.updated_at,
			   e.full_name AS employee_name,
			   e.department AS employee_department
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
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
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.OrganizationID, &att.EmployeeID, &att.Date, &att.ShiftAssignmentID,
			&att.ClockIn, &att.ClockOut, &att.Status, &att.ApprovedBy, &att.ApprovedAt,
			&att.RejectionReason, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName, &att.EmployeeDepartment,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}

// ListRawForTimesheet implements attendance.AttendanceRepository. It hands the
// timesheet engine its input batch: one row per attendance, joined with the
// employee and the resolved schedule window, timestamps formatted as text.
// Numeric legacy columns stay loosely typed; the engine owns their coercion.
func (a *attendanceRepository) ListRawForTimesheet(ctx context.Context, filter attendance.TimesheetWindow, orgID string) ([]timesheet.RawRecord, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.organization_id = $1"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND e.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	selectQuery := fmt.Sprintf(`
		SELECT a.id,
			   a.employee_id,
			   COALESCE(e.full_name, '') AS employee_name,
			   COALESCE(e.department, '') AS department,
			   to_char(a.date, 'YYYY-MM-DD') AS date,
			   to_char(a.clock_in, 'YYYY-MM-DD HH24:MI:SS') AS clock_in_time,
			   to_char(a.clock_out, 'YYYY-MM-DD HH24:MI:SS') AS clock_out_time,
			   a.status,
			   to_char(a.date + st.start_time::time, 'YYYY-MM-DD HH24:MI:SS') AS scheduled_start,
			   to_char(
				   a.date + st.end_time::time
				   + CASE WHEN st.is_overnight THEN interval '24 hours' ELSE interval '0' END,
				   'YYYY-MM-DD HH24:MI:SS'
			   ) AS scheduled_end,
			   st.max_break_minutes AS max_break_allowed
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shift_assignments sa ON sa.id = a.shift_assignment_id
		LEFT JOIN shift_templates st ON st.id = sa.shift_template_id
		WHERE %s
		ORDER BY a.date ASC, a.clock_in ASC
	`, baseWhere)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query timesheet rows: %w", err)
	}
	defer rows.Close()

	var raws []timesheet.RawRecord
	var attendanceIDs []string
	for rows.Next() {
		var (
			id              string
			raw             timesheet.RawRecord
			maxBreakMinutes *int
		)
		err := rows.Scan(
			&id,
			&raw.EmployeeID,
			&raw.EmployeeName,
			&raw.Department,
			&raw.Date,
			&raw.ClockInTime,
			&raw.ClockOutTime,
			&raw.Status,
			&raw.ScheduledStart,
			&raw.ScheduledEnd,
			&maxBreakMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet row: %w", err)
		}
		if maxBreakMinutes != nil {
			raw.MaxBreakAllowed = *maxBreakMinutes
		}
		raws = append(raws, raw)
		attendanceIDs = append(attendanceIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timesheet rows: %w", err)
	}

	if len(attendanceIDs) == 0 {
		return raws, nil
	}

	breaks, err := a.listRawBreaks(ctx, attendanceIDs)
	if err != nil {
		return nil, err
	}
	for i, id := range attendanceIDs {
		raws[i].Breaks = breaks[id]
	}

	return raws, nil
}

func (a *attendanceRepository) listRawBreaks(ctx context.Context, attendanceIDs []string) (map[string][]timesheet.RawBreak, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT attendance_id,
			   to_char(started_at, 'YYYY-MM-DD HH24:MI:SS') AS started_at,
			   to_char(ended_at, 'YYYY-MM-DD HH24:MI:SS') AS ended_at
		FROM attendance_breaks
		WHERE attendance_id = ANY($1)
		ORDER BY started_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query break intervals: %w", err)
	}
	defer rows.Close()

	breaks := make(map[string][]timesheet.RawBreak)
	for rows.Next() {
		var (
			attendanceID string
			start        string
			end          *string
		)
		if err := rows.Scan(&attendanceID, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan break interval: %w", err)
		}
		breaks[attendanceID] = append(breaks[attendanceID], timesheet.RawBreak{
			Start: start,
			End:   end,
		})
	}

	return breaks, nil
}

// GetStaleOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetStaleOpenSessions(ctx context.Context, maxAgeHours int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, organization_id, employee_id, date, shift_assignment_id,
			   clock_in, clock_out, status, approved_by, approved_at,
			   rejection_reason, created_at, updated_at
		FROM attendances
		WHERE clock_in IS NOT NULL
		  AND clock_out IS NULL
		  AND clock_in < NOW() - make_interval(hours => $1)
	`

	rows, err := q.Query(ctx, query, maxAgeHours)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale open sessions: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.OrganizationID, &att.EmployeeID, &att.Date, &att.ShiftAssignmentID,
			&att.ClockIn, &att.ClockOut, &att.Status, &att.ApprovedBy, &att.ApprovedAt,
			&att.RejectionReason, &att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stale session: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
