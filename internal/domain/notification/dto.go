package notification

import (
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/validator"
)

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

func (r *CreateNotificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "is required"})
	}
	if validator.IsEmpty(r.RecipientID) {
		errs = append(errs, validator.ValidationError{Field: "recipient_id", Message: "is required"})
	}
	if validator.IsEmpty(string(r.Type)) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
