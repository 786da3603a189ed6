package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/site"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type siteRepository struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepository{db: db}
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string, companyID string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, latitude, longitude, check_in, check_out
		FROM sites
		WHERE id = $1 AND company_id = $2
	`

	var s site.Site
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Latitude, &s.Longitude, &s.CheckIn, &s.CheckOut,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site %s: %w", id, err)
	}
	return s, nil
}
