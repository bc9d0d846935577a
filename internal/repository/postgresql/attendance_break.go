package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/attendance"
	"github.com/shifttracker/shifttracker-backend-go/internal/pkg/database"
)

type breakRepository struct {
	db *database.DB
}

// Start implements attendance.BreakRepository.
func (b *breakRepository) Start(ctx context.Context, attendanceID string, startedAt time.Time) (attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO attendance_breaks (id, attendance_id, started_at)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	brk := attendance.Break{
		ID:           uuid.New().String(),
		AttendanceID: attendanceID,
		StartedAt:    startedAt,
	}
	err := q.QueryRow(ctx, query, brk.ID, attendanceID, startedAt).Scan(&brk.CreatedAt)
	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to start break: %w", err)
	}

	return brk, nil
}

// End implements attendance.BreakRepository.
func (b *breakRepository) End(ctx context.Context, attendanceID string, endedAt time.Time) (attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE attendance_breaks
		SET ended_at = $1
		WHERE attendance_id = $2
		  AND ended_at IS NULL
		RETURNING id, attendance_id, started_at, ended_at, created_at
	`

	var brk attendance.Break
	err := q.QueryRow(ctx, query, endedAt, attendanceID).Scan(
		&brk.ID, &brk.AttendanceID, &brk.StartedAt, &brk.EndedAt, &brk.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Break{}, attendance.ErrNoOpenBreak
		}
		return attendance.Break{}, fmt.Errorf("failed to end break: %w", err)
	}

	return brk, nil
}

// GetOpen implements attendance.BreakRepository.
func (b *breakRepository) GetOpen(ctx context.Context, attendanceID string) (*attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, attendance_id, started_at, ended_at, created_at
		FROM attendance_breaks
		WHERE attendance_id = $1
		  AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`

	var brk attendance.Break
	err := q.QueryRow(ctx, query, attendanceID).Scan(
		&brk.ID, &brk.AttendanceID, &brk.StartedAt, &brk.EndedAt, &brk.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no break currently running
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}

	return &brk, nil
}

// ListByAttendance implements attendance.BreakRepository.
func (b *breakRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.Break, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, attendance_id, started_at, ended_at, created_at
		FROM attendance_breaks
		WHERE attendance_id = $1
		ORDER BY started_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		var brk attendance.Break
		err := rows.Scan(&brk.ID, &brk.AttendanceID, &brk.StartedAt, &brk.EndedAt, &brk.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, brk)
	}

	return breaks, nil
}

// CloseDangling implements attendance.BreakRepository. Breaks left open past
// the cutoff are closed at their own start time so they add no break hours.
func (b *breakRepository) CloseDangling(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		UPDATE attendance_breaks
		SET ended_at = started_at
		WHERE ended_at IS NULL
		  AND started_at < $1
	`

	commandTag, err := q.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to close dangling breaks: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}
