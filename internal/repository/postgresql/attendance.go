package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const markColumns = `
	a.id, a.employee_id, a.date, a.status, a.created_at, a.updated_at,
	e.first_name || ' ' || e.last_name AS employee_name`

func scanMark(row pgx.Row) (attendance.Mark, error) {
	var m attendance.Mark
	var status string
	err := row.Scan(&m.ID, &m.EmployeeID, &m.Date, &status, &m.CreatedAt, &m.UpdatedAt, &m.EmployeeName)
	m.Status = attendance.Status(status)
	return m, err
}

func collectMarks(rows pgx.Rows) ([]attendance.Mark, error) {
	defer rows.Close()

	marks := []attendance.Mark{}
	for rows.Next() {
		m, err := scanMark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return marks, nil
}

// Replace implements attendance.AttendanceRepository.
func (a *attendanceRepository) Replace(ctx context.Context, m attendance.Mark) (attendance.Mark, error) {
	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		return a.replace(WithTx(ctx, tx), &m)
	})
	if err != nil {
		return attendance.Mark{}, err
	}
	return m, nil
}

// ReplaceMany implements attendance.AttendanceRepository.
func (a *attendanceRepository) ReplaceMany(ctx context.Context, marks []attendance.Mark) error {
	if len(marks) == 0 {
		return nil
	}
	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := WithTx(ctx, tx)
		for i := range marks {
			if err := a.replace(txCtx, &marks[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *attendanceRepository) replace(ctx context.Context, m *attendance.Mark) error {
	q := GetQuerier(ctx, a.db)

	// A conflicting row is overwritten in place so concurrent submissions for the
	// same employee and date serialize on the unique index and the last one wins.
	query := `
		INSERT INTO attendance_marks (id, employee_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			id = EXCLUDED.id,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, m.ID, m.EmployeeID, m.Date, string(m.Status), m.CreatedAt, m.UpdatedAt).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return nil
}

// InsertMissing implements attendance.AttendanceRepository.
func (a *attendanceRepository) InsertMissing(ctx context.Context, marks []attendance.Mark) (int, error) {
	if len(marks) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO attendance_marks (id, employee_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	var inserted int
	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := WithTx(ctx, tx)
		q := GetQuerier(txCtx, a.db)
		for _, m := range marks {
			commandTag, err := q.Exec(txCtx, query, m.ID, m.EmployeeID, m.Date, string(m.Status), m.CreatedAt, m.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert attendance: %w", err)
			}
			inserted += int(commandTag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Mark, error) {
	if !validID(id) {
		return attendance.Mark{}, attendance.ErrAttendanceNotFound
	}

	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + markColumns + `
		FROM attendance_marks a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	m, err := scanMark(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Mark{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Mark{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return m, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return attendance.ErrAttendanceNotFound
	}

	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_marks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, start, end time.Time) ([]attendance.Mark, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "a.date BETWEEN $1 AND $2"
	args := []interface{}{start, end}
	argIdx := 3

	// Employee ID filter
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Status filter
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_marks a
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	// Build ORDER BY
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}
	orderBy := "a.date " + sortOrder
	switch filter.SortBy {
	case "employee_name":
		orderBy = fmt.Sprintf("e.first_name %[1]s, e.last_name %[1]s", sortOrder)
	case "status":
		orderBy = "a.status " + sortOrder
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendance_marks a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s, a.id
		LIMIT $%d OFFSET $%d
	`, markColumns, baseWhere, orderBy, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance: %w", err)
	}

	marks, err := collectMarks(rows)
	if err != nil {
		return nil, 0, err
	}
	return marks, total, nil
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, start, end time.Time) ([]attendance.Mark, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + markColumns + `
		FROM attendance_marks a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY a.date, e.first_name, e.last_name
	`
	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance by range: %w", err)
	}
	return collectMarks(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Mark, error) {
	return a.ListByRange(ctx, date, date)
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
