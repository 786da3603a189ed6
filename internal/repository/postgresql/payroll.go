package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const payrollColumns = `id, employee_id, company_id, generation_date, basic_salary, adjustments,
		       total_amount, status, created_at, updated_at`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func scanPayroll(row pgx.Row, extra ...any) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	var adjustmentsJSON []byte
	dest := []any{
		&r.ID, &r.EmployeeID, &r.CompanyID, &r.GenerationDate, &r.BasicSalary, &adjustmentsJSON,
		&r.TotalAmount, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return payroll.PayrollRecord{}, err
	}
	r.Adjustments = []payroll.Adjustment{}
	if len(adjustmentsJSON) > 0 {
		if err := json.Unmarshal(adjustmentsJSON, &r.Adjustments); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal adjustments: %w", err)
		}
	}
	return r, nil
}

// Upsert implements payroll.PayrollRepository.
func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	q := GetQuerier(ctx, r.db)

	adjustments := record.Adjustments
	if adjustments == nil {
		adjustments = []payroll.Adjustment{}
	}
	adjustmentsJSON, err := json.Marshal(adjustments)
	if err != nil {
		return payroll.PayrollRecord{}, false, fmt.Errorf("failed to marshal adjustments: %w", err)
	}

	// total_amount keeps the adjustment delta of the existing row when basic salary is refreshed
	query := `
		INSERT INTO payroll_records (
			employee_id, company_id, generation_date, basic_salary, adjustments, total_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT uq_payroll_employee_generation DO UPDATE
		SET basic_salary = EXCLUDED.basic_salary,
		    total_amount = EXCLUDED.basic_salary + (payroll_records.total_amount - payroll_records.basic_salary),
		    updated_at = now()
		WHERE payroll_records.status = 'Pending'
		RETURNING ` + payrollColumns + `, (xmax = 0) AS inserted
	`

	var inserted bool
	result, err := scanPayroll(q.QueryRow(ctx, query,
		record.EmployeeID,
		record.CompanyID,
		record.GenerationDate,
		record.BasicSalary,
		adjustmentsJSON,
		record.TotalAmount,
		string(record.Status),
	), &inserted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, false, payroll.ErrPayrollRecordLocked
		}
		return payroll.PayrollRecord{}, false, fmt.Errorf("failed to upsert payroll for employee %s: %w", record.EmployeeID, err)
	}
	return result, inserted, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	return r.get(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE id = $1 AND company_id = $2`, id, companyID)
}

// GetByIDForUpdate implements payroll.PayrollRepository.
func (r *payrollRepository) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	return r.get(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE id = $1 AND company_id = $2 FOR UPDATE`, id, companyID)
}

func (r *payrollRepository) get(ctx context.Context, query string, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanPayroll(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record %s: %w", id, err)
	}
	return record, nil
}

// UpdateAdjustments implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateAdjustments(ctx context.Context, record payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	adjustmentsJSON, err := json.Marshal(record.Adjustments)
	if err != nil {
		return fmt.Errorf("failed to marshal adjustments: %w", err)
	}

	query := `
		UPDATE payroll_records
		SET adjustments = $1, total_amount = $2, updated_at = now()
		WHERE id = $3 AND company_id = $4 AND status = 'Pending'
	`

	cmd, err := q.Exec(ctx, query, adjustmentsJSON, record.TotalAmount, record.ID, record.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update payroll adjustments %s: %w", record.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordLocked
	}
	return nil
}

// UpdateStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, companyID string, from, to payroll.PayrollStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $1, updated_at = now()
		WHERE id = $2 AND company_id = $3 AND status = $4
	`

	cmd, err := q.Exec(ctx, query, string(to), id, companyID, string(from))
	if err != nil {
		return fmt.Errorf("failed to update payroll status %s: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return payroll.ErrInvalidStatusTransition
	}
	return nil
}
