package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies migrations and empties every table.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.Migrate(ctx, db))

	_, err = db.Exec(ctx, `TRUNCATE TABLE job_runs, notifications, payroll_records, leave_records,
		attendance_records, sites, employees, grades, holidays, companies CASCADE`)
	require.NoError(t, err)

	return db
}

type seed struct {
	CompanyID  string
	GradeID    string
	EmployeeID string
	SiteID     string
}

func seedCompany(t *testing.T, db *database.DB) seed {
	t.Helper()
	ctx := context.Background()

	var s seed
	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO companies (name, live_absent_enabled, live_payroll_enabled, payroll_generation_day, weekly_holidays, timezone)
		VALUES ('Acme', TRUE, TRUE, 25, '{Saturday,Sunday}', 'Asia/Jakarta') RETURNING id`).Scan(&s.CompanyID))
	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO grades (company_id, name, basic_salary) VALUES ($1, 'G1', 5000000) RETURNING id`,
		s.CompanyID).Scan(&s.GradeID))
	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO employees (company_id, grade_id, full_name, status) VALUES ($1, $2, 'Budi', 'approved') RETURNING id`,
		s.CompanyID, s.GradeID).Scan(&s.EmployeeID))
	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO sites (company_id, name, latitude, longitude, check_in, check_out)
		VALUES ($1, 'HQ', -6.175392, 106.827153, '08:00', '17:00') RETURNING id`,
		s.CompanyID).Scan(&s.SiteID))
	return s
}
