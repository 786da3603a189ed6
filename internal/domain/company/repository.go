package company

import (
	"context"
	"time"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)

	// ListLiveAbsent returns active companies with live absence tracking enabled
	ListLiveAbsent(ctx context.Context) ([]Company, error)

	// ListLivePayroll returns active companies with live payroll generation enabled
	ListLivePayroll(ctx context.Context) ([]Company, error)
}

type HolidayRepository interface {
	// GetCovering returns ad-hoc holidays of the company whose range includes date
	GetCovering(ctx context.Context, companyID string, date time.Time) ([]Holiday, error)
}
