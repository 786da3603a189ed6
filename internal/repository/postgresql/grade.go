package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/grade"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type gradeRepository struct {
	db *database.DB
}

func NewGradeRepository(db *database.DB) grade.GradeRepository {
	return &gradeRepository{db: db}
}

// GetByID implements grade.GradeRepository.
func (r *gradeRepository) GetByID(ctx context.Context, id string, companyID string) (grade.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, company_id, name, basic_salary FROM grades WHERE id = $1 AND company_id = $2`

	var g grade.Grade
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&g.ID, &g.CompanyID, &g.Name, &g.BasicSalary); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return grade.Grade{}, grade.ErrGradeNotFound
		}
		return grade.Grade{}, fmt.Errorf("failed to get grade %s: %w", id, err)
	}
	return g, nil
}

// GetByCompanyID implements grade.GradeRepository.
func (r *gradeRepository) GetByCompanyID(ctx context.Context, companyID string) ([]grade.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, company_id, name, basic_salary FROM grades WHERE company_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades of company %s: %w", companyID, err)
	}
	defer rows.Close()

	var grades []grade.Grade
	for rows.Next() {
		var g grade.Grade
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.Name, &g.BasicSalary); err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}
