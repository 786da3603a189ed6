package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
)

type PayrollServiceImpl struct {
	tx              database.Transactor
	payrollRepo     payroll.PayrollRepository
	notificationSvc notification.Service
}

func NewPayrollService(tx database.Transactor, payrollRepo payroll.PayrollRepository, notificationSvc notification.Service) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:              tx,
		payrollRepo:     payrollRepo,
		notificationSvc: notificationSvc,
	}
}

// GetRecord implements payroll.PayrollService.
// Employees may only read their own records; owners and managers any record of their company.
func (s *PayrollServiceImpl) GetRecord(ctx context.Context, actor auth.Actor, id string) (payroll.PayrollRecordResponse, error) {
	if err := payroll.ValidateRecordID(id); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	record, err := s.payrollRepo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !actor.CanManagePayroll() && record.EmployeeID != actor.EmployeeID {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
	}
	return payroll.ToResponse(record), nil
}

// AddAdjustment implements payroll.PayrollService.
func (s *PayrollServiceImpl) AddAdjustment(ctx context.Context, actor auth.Actor, req payroll.AddAdjustmentRequest) (payroll.PayrollRecordResponse, error) {
	if !actor.CanManagePayroll() {
		return payroll.PayrollRecordResponse{}, auth.ErrManagerRoleRequired
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var updated payroll.PayrollRecord
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.payrollRepo.GetByIDForUpdate(txCtx, req.RecordID, actor.CompanyID)
		if err != nil {
			return err
		}
		if err := record.AddAdjustment(payroll.Adjustment{Type: req.Type, Amount: req.Amount}); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdateAdjustments(txCtx, record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return payroll.ToResponse(updated), nil
}

// UpdateStatus implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, actor auth.Actor, req payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	if !actor.CanManagePayroll() {
		return payroll.PayrollRecordResponse{}, auth.ErrManagerRoleRequired
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	next := payroll.PayrollStatus(req.Status)

	var updated payroll.PayrollRecord
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := s.payrollRepo.GetByIDForUpdate(txCtx, req.RecordID, actor.CompanyID)
		if err != nil {
			return err
		}
		if !record.CanTransition(next) {
			return fmt.Errorf("%w: %s to %s", payroll.ErrInvalidStatusTransition, record.Status, next)
		}
		if err := s.payrollRepo.UpdateStatus(txCtx, record.ID, actor.CompanyID, record.Status, next); err != nil {
			return err
		}
		record.Status = next
		updated = record
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if next == payroll.PayrollStatusPublished && s.notificationSvc != nil {
		date := updated.GenerationDate.Format("2006-01-02")
		err := s.notificationSvc.Notify(ctx, notification.CreateNotificationRequest{
			CompanyID:   updated.CompanyID,
			RecipientID: updated.EmployeeID,
			SenderID:    nilIfEmpty(actor.EmployeeID),
			Type:        notification.TypePayrollPublished,
			Title:       "Payslip published",
			Message:     fmt.Sprintf("Your payslip for %s is available", date),
			Data: map[string]interface{}{
				"payroll_id":   updated.ID,
				"total_amount": updated.TotalAmount.String(),
			},
		})
		if err != nil {
			slog.Warn("Failed to notify payslip publication", "payroll_id", updated.ID, "error", err)
		}
	}

	return payroll.ToResponse(updated), nil
}

func nilIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
