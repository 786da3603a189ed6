package employee

import "context"

type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetApprovedByCompanyID lists approved employees of a company
	GetApprovedByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
}
