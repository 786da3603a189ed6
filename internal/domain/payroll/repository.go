package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayrollRepository interface {
	// Upsert inserts the record keyed by (employee_id, generation_date). On conflict a
	// Pending row gets the new basic salary with its adjustments kept; non-Pending rows
	// are left alone and ErrPayrollRecordLocked is returned.
	Upsert(ctx context.Context, record PayrollRecord) (result PayrollRecord, inserted bool, err error)

	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (PayrollRecord, error)

	// UpdateAdjustments persists adjustments and total of a Pending record
	UpdateAdjustments(ctx context.Context, record PayrollRecord) error

	// UpdateStatus moves a record from one status to another
	UpdateStatus(ctx context.Context, id string, companyID string, from, to PayrollStatus) error
}
