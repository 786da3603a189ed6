package employee

import (
	"time"
)

type Employee struct {
	ID           string
	CompanyID    string
	SupervisorID *string
	GradeID      *string
	FullName     string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// PayrollEligible reports whether the employee should receive a generated payroll record.
func (e Employee) PayrollEligible() bool {
	return e.Status == StatusApproved && e.GradeID != nil && *e.GradeID != ""
}
