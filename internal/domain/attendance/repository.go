package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID parameter to prevent cross-company data access attacks.
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns nil when the employee has no record for date
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	// GetByCompanyAndDate returns the company's records for date keyed by employee ID
	GetByCompanyAndDate(ctx context.Context, companyID string, date time.Time) (map[string]Attendance, error)

	// InsertIfAbsent inserts the record unless one already exists for (employee, date).
	// inserted is false when the unique key already existed.
	InsertIfAbsent(ctx context.Context, attendance Attendance) (result Attendance, inserted bool, err error)

	// RetagIfNotCheckedIn changes the tag of a record that has no check-in yet.
	// updated is false when a check-in happened in the meantime.
	RetagIfNotCheckedIn(ctx context.Context, id string, companyID string, tag Tag) (updated bool, err error)

	// RecordCheckIn stores check-in data on an existing record without a check-in;
	// returns ErrAlreadyCheckedIn otherwise
	RecordCheckIn(ctx context.Context, attendance Attendance) error

	// RecordCheckOut stores check-out data; returns ErrAlreadyCheckedOut when one exists
	RecordCheckOut(ctx context.Context, attendance Attendance) error
}
