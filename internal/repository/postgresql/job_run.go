package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/google/uuid"
)

type jobRunRepository struct {
	db *database.DB
}

func NewJobRunRepository(db *database.DB) job.RunRepository {
	return &jobRunRepository{db: db}
}

// Create implements job.RunRepository.
func (r *jobRunRepository) Create(ctx context.Context, run *job.Run) error {
	q := GetQuerier(ctx, r.db)

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	query := `
		INSERT INTO job_runs (
			id, job, run_date, companies, processed, skipped, errors, status_code, message, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)
	`

	_, err := q.Exec(ctx, query,
		run.ID,
		run.Job,
		run.RunDate,
		run.Companies,
		run.Processed,
		run.Skipped,
		run.Errors,
		run.StatusCode,
		run.Message,
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record job run %s: %w", run.Job, err)
	}
	return nil
}
