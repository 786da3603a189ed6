package leave

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// LeaveRecord is a leave request with an inclusive date range.
type LeaveRecord struct {
	ID         string
	EmployeeID string
	CompanyID  string
	StartDate  time.Time
	EndDate    time.Time
	Status     Status
	CreatedAt  time.Time
}

// CoversApproved reports whether the record is approved and its range includes day.
func (l LeaveRecord) CoversApproved(day time.Time) bool {
	if l.Status != StatusApproved {
		return false
	}
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(end)
}
