package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/notification"
	"github.com/google/uuid"
)

type service struct {
	repo notification.Repository
	now  func() time.Time
}

// NewNotificationService creates a notification service that writes straight to the repository
func NewNotificationService(repo notification.Repository) notification.Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) build(req notification.CreateNotificationRequest) (*notification.Notification, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &notification.Notification{
		ID:          uuid.New().String(),
		CompanyID:   req.CompanyID,
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		IsRead:      false,
		CreatedAt:   s.now(),
	}, nil
}

// Notify inserts a single notification
func (s *service) Notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	n, err := s.build(req)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, n)
}

// NotifyBulk inserts all valid notifications in one batch; invalid requests are logged and dropped
func (s *service) NotifyBulk(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	batch := make([]*notification.Notification, 0, len(reqs))
	for _, req := range reqs {
		n, err := s.build(req)
		if err != nil {
			slog.Warn("Dropping invalid notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
			continue
		}
		batch = append(batch, n)
	}
	return s.repo.CreateBatch(ctx, batch)
}
