package payroll

import "errors"

var (
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrPayrollRecordLocked     = errors.New("payroll record is no longer pending, cannot modify")
	ErrInvalidStatusTransition = errors.New("invalid payroll status transition")
)
