package site

import "context"

type SiteRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Site, error)
}
