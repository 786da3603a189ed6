package notification

import (
	"context"
)

// Service delivers in-app notifications. Callers treat delivery as best effort:
// an error is logged by the caller and never undoes the business write.
type Service interface {
	Notify(ctx context.Context, req CreateNotificationRequest) error
	NotifyBulk(ctx context.Context, reqs []CreateNotificationRequest) error
}
