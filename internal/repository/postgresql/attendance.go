package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, employee_id, company_id, site_id, date, tag,
		       check_in_time, check_out_time,
		       check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
		       created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.SiteID, &att.Date, &att.Tag,
		&att.CheckInTime, &att.CheckOutTime,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2 AND company_id = $3`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance of employee %s: %w", employeeID, err)
	}
	return &att, nil
}

// GetByCompanyAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByCompanyAndDate(ctx context.Context, companyID string, date time.Time) (map[string]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE company_id = $1 AND date = $2`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance of company %s: %w", companyID, err)
	}
	defer rows.Close()

	result := make(map[string]attendance.Attendance)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result[att.EmployeeID] = att
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return result, nil
}

// InsertIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) InsertIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, company_id, site_id, date, tag,
			check_in_time, check_out_time,
			check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT ON CONSTRAINT uq_attendance_employee_date DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.CompanyID,
		att.SiteID,
		att.Date,
		string(att.Tag),
		att.CheckInTime,
		att.CheckOutTime,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return att, true, nil
}

// RetagIfNotCheckedIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) RetagIfNotCheckedIn(ctx context.Context, id string, companyID string, tag attendance.Tag) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET tag = $1, updated_at = now()
		WHERE id = $2 AND company_id = $3 AND check_in_time IS NULL
	`

	cmd, err := q.Exec(ctx, query, string(tag), id, companyID)
	if err != nil {
		return false, fmt.Errorf("failed to retag attendance %s: %w", id, err)
	}
	return cmd.RowsAffected() == 1, nil
}

// RecordCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) RecordCheckIn(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET site_id = $1, tag = $2, check_in_time = $3, check_in_latitude = $4, check_in_longitude = $5,
		    updated_at = now()
		WHERE id = $6 AND company_id = $7 AND check_in_time IS NULL
	`

	cmd, err := q.Exec(ctx, query,
		att.SiteID, string(att.Tag), att.CheckInTime, att.CheckInLatitude, att.CheckInLongitude,
		att.ID, att.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to record check-in on attendance %s: %w", att.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedIn
	}
	return nil
}

// RecordCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) RecordCheckOut(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $1, check_out_latitude = $2, check_out_longitude = $3, updated_at = now()
		WHERE id = $4 AND company_id = $5 AND check_in_time IS NOT NULL AND check_out_time IS NULL
	`

	cmd, err := q.Exec(ctx, query, att.CheckOutTime, att.CheckOutLatitude, att.CheckOutLongitude, att.ID, att.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to record check-out on attendance %s: %w", att.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}
	return nil
}
