package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// GetApprovedOnDate returns approved leave records of the company's employees covering date,
	// keyed by employee ID
	GetApprovedOnDate(ctx context.Context, companyID string, date time.Time) (map[string]LeaveRecord, error)
}
