package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/grade"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Generator is the daily batch that creates Pending payroll records on each
// company's payroll generation day.
type Generator struct {
	companyRepo     company.CompanyRepository
	employeeRepo    employee.EmployeeRepository
	gradeRepo       grade.GradeRepository
	payrollRepo     payroll.PayrollRepository
	notificationSvc notification.Service
	defaultLocation *time.Location
}

func NewGenerator(
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	gradeRepo grade.GradeRepository,
	payrollRepo payroll.PayrollRepository,
	notificationSvc notification.Service,
	defaultLocation *time.Location,
) *Generator {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &Generator{
		companyRepo:     companyRepo,
		employeeRepo:    employeeRepo,
		gradeRepo:       gradeRepo,
		payrollRepo:     payrollRepo,
		notificationSvc: notificationSvc,
		defaultLocation: defaultLocation,
	}
}

func (g *Generator) Name() string {
	return job.NamePayrollGenerator
}

type companyTally struct {
	processed int
	skipped   int
	errors    int
}

// Run implements job.Runner.
func (g *Generator) Run(ctx context.Context, now time.Time) (job.Summary, error) {
	summary := job.Summary{Job: g.Name(), Date: now.In(g.defaultLocation).Format("2006-01-02")}

	slog.Info("Job: Starting payroll generator", "date", summary.Date)

	companies, err := g.companyRepo.ListLivePayroll(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: %v", job.ErrListCompanies, err)
	}

	for _, c := range companies {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		local := now.In(c.Location(g.defaultLocation))
		if !c.IsPayrollDay(local) {
			continue
		}
		summary.Companies++

		tally, err := g.generateCompany(ctx, c, civilDate(local))
		summary.Processed += tally.processed
		summary.Skipped += tally.skipped
		summary.Errors += tally.errors
		if err != nil {
			slog.Error("Job: Failed to generate company payroll", "company_id", c.ID, "error", err)
			summary.Errors++
		}
	}

	slog.Info("Job: Payroll generator finished",
		"companies", summary.Companies,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"errors", summary.Errors)

	return summary, nil
}

func (g *Generator) generateCompany(ctx context.Context, c company.Company, generationDate time.Time) (companyTally, error) {
	var tally companyTally

	employees, err := g.employeeRepo.GetApprovedByCompanyID(ctx, c.ID)
	if err != nil {
		return tally, err
	}

	grades, err := g.gradeRepo.GetByCompanyID(ctx, c.ID)
	if err != nil {
		return tally, err
	}
	salaries := make(map[string]decimal.Decimal, len(grades))
	for _, gr := range grades {
		salaries[gr.ID] = gr.BasicSalary
	}

	var notices []notification.CreateNotificationRequest
	for _, emp := range employees {
		if !emp.PayrollEligible() {
			tally.skipped++
			continue
		}

		basic, ok := salaries[*emp.GradeID]
		if !ok {
			slog.Error("Job: Employee grade not found", "company_id", c.ID, "employee_id", emp.ID, "grade_id", *emp.GradeID)
			tally.errors++
			continue
		}

		record, inserted, err := g.payrollRepo.Upsert(ctx, payroll.NewGenerated(emp.ID, c.ID, generationDate, basic))
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollRecordLocked) {
				tally.skipped++
				continue
			}
			slog.Error("Job: Failed to upsert payroll", "company_id", c.ID, "employee_id", emp.ID, "error", err)
			tally.errors++
			continue
		}
		tally.processed++

		if inserted {
			notices = append(notices, generatedNotice(emp, record))
		}
	}

	g.notifyEmployees(ctx, c.ID, notices)
	return tally, nil
}

// notifyEmployees is best effort: payroll stays committed whatever happens here.
func (g *Generator) notifyEmployees(ctx context.Context, companyID string, notices []notification.CreateNotificationRequest) {
	if g.notificationSvc == nil || len(notices) == 0 {
		return
	}
	if err := g.notificationSvc.NotifyBulk(ctx, notices); err != nil {
		slog.Warn("Job: Failed to notify payroll generation", "company_id", companyID, "count", len(notices), "error", err)
	}
}

func generatedNotice(emp employee.Employee, record payroll.PayrollRecord) notification.CreateNotificationRequest {
	date := record.GenerationDate.Format("2006-01-02")
	return notification.CreateNotificationRequest{
		CompanyID:   record.CompanyID,
		RecipientID: emp.ID,
		Type:        notification.TypePayrollGenerated,
		Title:       "Payroll generated",
		Message:     fmt.Sprintf("Your payroll for %s has been generated", date),
		Data: map[string]interface{}{
			"payroll_id":      record.ID,
			"generation_date": date,
			"total_amount":    record.TotalAmount.String(),
		},
	}
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
