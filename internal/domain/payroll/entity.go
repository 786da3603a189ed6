package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending   PayrollStatus = "Pending"
	PayrollStatusPublished PayrollStatus = "Published"
	PayrollStatusPaid      PayrollStatus = "Paid"
)

// Adjustment is a signed amount added to the basic salary, e.g. {"bonus", 500000} or {"deduction", -100000}.
type Adjustment struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// PayrollRecord - one generated payroll per employee per generation date
type PayrollRecord struct {
	ID             string
	EmployeeID     string
	CompanyID      string
	GenerationDate time.Time
	BasicSalary    decimal.Decimal
	Adjustments    []Adjustment
	TotalAmount    decimal.Decimal
	Status         PayrollStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TotalOf returns basic + sum(adjustment amounts).
func TotalOf(basic decimal.Decimal, adjustments []Adjustment) decimal.Decimal {
	total := basic
	for _, adj := range adjustments {
		total = total.Add(adj.Amount)
	}
	return total
}

// NewGenerated builds a fresh Pending record with no adjustments.
func NewGenerated(employeeID, companyID string, generationDate time.Time, basic decimal.Decimal) PayrollRecord {
	return PayrollRecord{
		EmployeeID:     employeeID,
		CompanyID:      companyID,
		GenerationDate: generationDate,
		BasicSalary:    basic,
		Adjustments:    []Adjustment{},
		TotalAmount:    basic,
		Status:         PayrollStatusPending,
	}
}

// Recompute restores the total invariant after BasicSalary or Adjustments change.
func (r *PayrollRecord) Recompute() {
	r.TotalAmount = TotalOf(r.BasicSalary, r.Adjustments)
}

// AddAdjustment appends adj and recomputes the total. Only Pending records can be adjusted.
func (r *PayrollRecord) AddAdjustment(adj Adjustment) error {
	if r.Status != PayrollStatusPending {
		return ErrPayrollRecordLocked
	}
	r.Adjustments = append(r.Adjustments, adj)
	r.Recompute()
	return nil
}

// CanTransition reports whether the status may move from r.Status to next.
// Pending -> Published -> Paid; Pending -> Paid is allowed for off-cycle payments.
func (r PayrollRecord) CanTransition(next PayrollStatus) bool {
	switch r.Status {
	case PayrollStatusPending:
		return next == PayrollStatusPublished || next == PayrollStatusPaid
	case PayrollStatusPublished:
		return next == PayrollStatusPaid
	}
	return false
}
