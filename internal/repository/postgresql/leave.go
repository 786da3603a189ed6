package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// GetApprovedOnDate implements leave.LeaveRepository.
func (r *leaveRepository) GetApprovedOnDate(ctx context.Context, companyID string, date time.Time) (map[string]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, start_date, end_date, status, created_at
		FROM leave_records
		WHERE company_id = $1
		  AND status = $2
		  AND start_date <= $3 AND end_date >= $3
	`

	rows, err := q.Query(ctx, query, companyID, string(leave.StatusApproved), date)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved leave for company %s: %w", companyID, err)
	}
	defer rows.Close()

	result := make(map[string]leave.LeaveRecord)
	for rows.Next() {
		var l leave.LeaveRecord
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.CompanyID, &l.StartDate, &l.EndDate, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		result[l.EmployeeID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave records: %w", err)
	}
	return result, nil
}
