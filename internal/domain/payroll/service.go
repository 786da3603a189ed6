package payroll

import (
	"context"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
)

type PayrollService interface {
	GetRecord(ctx context.Context, actor auth.Actor, id string) (PayrollRecordResponse, error)
	AddAdjustment(ctx context.Context, actor auth.Actor, req AddAdjustmentRequest) (PayrollRecordResponse, error)
	UpdateStatus(ctx context.Context, actor auth.Actor, req UpdateStatusRequest) (PayrollRecordResponse, error)
}
