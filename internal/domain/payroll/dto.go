package payroll

import (
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

func recordIDErrors(id string) validator.ValidationErrors {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "is required"}}
	}
	if !validator.IsValidUUID(id) {
		return validator.ValidationErrors{{Field: "id", Message: "must be a valid UUID"}}
	}
	return nil
}

// ValidateRecordID checks a payroll record id taken from the URL.
func ValidateRecordID(id string) error {
	if errs := recordIDErrors(id); len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADJUSTMENT DTOs ==========

type AddAdjustmentRequest struct {
	RecordID string          `json:"-"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r *AddAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, recordIDErrors(r.RecordID)...)
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "is required"})
	}
	if r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must not be zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== STATUS DTOs ==========

type UpdateStatusRequest struct {
	RecordID string `json:"-"`
	Status   string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, recordIDErrors(r.RecordID)...)
	validStatuses := []string{string(PayrollStatusPublished), string(PayrollStatusPaid)}
	if !validator.IsInSlice(r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: Published, Paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== PAYROLL RECORD DTOs ==========

type PayrollRecordResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	GenerationDate string          `json:"generation_date"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	Adjustments    []Adjustment    `json:"adjustments"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         string          `json:"status"`
}

func ToResponse(r PayrollRecord) PayrollRecordResponse {
	adjustments := r.Adjustments
	if adjustments == nil {
		adjustments = []Adjustment{}
	}
	return PayrollRecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		GenerationDate: r.GenerationDate.Format("2006-01-02"),
		BasicSalary:    r.BasicSalary,
		Adjustments:    adjustments,
		TotalAmount:    r.TotalAmount,
		Status:         string(r.Status),
	}
}
