package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, name, live_absent_enabled, live_payroll_enabled, payroll_generation_day,
		       fiscal_year_start, weekly_holidays, timezone, is_active, created_at, updated_at`

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

// GetByID implements company.CompanyRepository.
func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	c, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}
	return c, nil
}

// ListLiveAbsent implements company.CompanyRepository.
func (r *companyRepository) ListLiveAbsent(ctx context.Context) ([]company.Company, error) {
	return r.list(ctx, `SELECT `+companyColumns+` FROM companies
		WHERE is_active = TRUE AND live_absent_enabled = TRUE
		ORDER BY id`)
}

// ListLivePayroll implements company.CompanyRepository.
func (r *companyRepository) ListLivePayroll(ctx context.Context) ([]company.Company, error) {
	return r.list(ctx, `SELECT `+companyColumns+` FROM companies
		WHERE is_active = TRUE AND live_payroll_enabled = TRUE AND payroll_generation_day IS NOT NULL
		ORDER BY id`)
}

func (r *companyRepository) list(ctx context.Context, query string) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return companies, nil
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.LiveAbsentEnabled, &c.LivePayrollEnabled, &c.PayrollGenerationDay,
		&c.FiscalYearStart, &c.WeeklyHolidays, &c.Timezone, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) company.HolidayRepository {
	return &holidayRepository{db: db}
}

// GetCovering implements company.HolidayRepository.
func (r *holidayRepository) GetCovering(ctx context.Context, companyID string, date time.Time) ([]company.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_date, end_date
		FROM holidays
		WHERE company_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var holidays []company.Holiday
	for rows.Next() {
		var h company.Holiday
		if err := rows.Scan(&h.ID, &h.CompanyID, &h.Name, &h.StartDate, &h.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}
