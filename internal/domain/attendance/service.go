package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
)

// AttendanceService defines business logic for interactive attendance operations
type AttendanceService interface {
	// CheckIn classifies and records the employee's check-in for today
	CheckIn(ctx context.Context, actor auth.Actor, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut records the employee's check-out for today
	CheckOut(ctx context.Context, actor auth.Actor, req CheckOutRequest) (AttendanceResponse, error)
}
