package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/leave"
)

// Tagger is the daily batch that guarantees every approved employee of an
// opted-in company has a derived attendance record for today.
type Tagger struct {
	companyRepo     company.CompanyRepository
	holidayRepo     company.HolidayRepository
	employeeRepo    employee.EmployeeRepository
	leaveRepo       leave.LeaveRepository
	attendanceRepo  attendance.AttendanceRepository
	defaultLocation *time.Location
}

func NewTagger(
	companyRepo company.CompanyRepository,
	holidayRepo company.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	defaultLocation *time.Location,
) *Tagger {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &Tagger{
		companyRepo:     companyRepo,
		holidayRepo:     holidayRepo,
		employeeRepo:    employeeRepo,
		leaveRepo:       leaveRepo,
		attendanceRepo:  attendanceRepo,
		defaultLocation: defaultLocation,
	}
}

func (t *Tagger) Name() string {
	return job.NameAttendanceTagger
}

type companyTally struct {
	processed int
	skipped   int
	errors    int
}

// Run implements job.Runner.
func (t *Tagger) Run(ctx context.Context, now time.Time) (job.Summary, error) {
	summary := job.Summary{Job: t.Name(), Date: now.In(t.defaultLocation).Format("2006-01-02")}

	slog.Info("Job: Starting attendance tagger", "date", summary.Date)

	companies, err := t.companyRepo.ListLiveAbsent(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: %v", job.ErrListCompanies, err)
	}

	for _, c := range companies {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Companies++

		tally, err := t.tagCompany(ctx, c, now)
		summary.Processed += tally.processed
		summary.Skipped += tally.skipped
		summary.Errors += tally.errors
		if err != nil {
			slog.Error("Job: Failed to tag company attendance", "company_id", c.ID, "error", err)
			summary.Errors++
		}
	}

	slog.Info("Job: Attendance tagger finished",
		"companies", summary.Companies,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"errors", summary.Errors)

	return summary, nil
}

func (t *Tagger) tagCompany(ctx context.Context, c company.Company, now time.Time) (companyTally, error) {
	var tally companyTally

	local := now.In(c.Location(t.defaultLocation))
	today := civilDate(local)

	employees, err := t.employeeRepo.GetApprovedByCompanyID(ctx, c.ID)
	if err != nil {
		return tally, err
	}

	if c.IsWeeklyHoliday(local) {
		slog.Info("Job: Weekly holiday, no attendance derived", "company_id", c.ID, "weekday", local.Weekday().String())
		tally.skipped = len(employees)
		return tally, nil
	}

	holidays, err := t.holidayRepo.GetCovering(ctx, c.ID, today)
	if err != nil {
		return tally, err
	}
	for _, h := range holidays {
		if h.Covers(today) {
			slog.Info("Job: Company holiday, no attendance derived", "company_id", c.ID, "holiday", h.Name)
			tally.skipped = len(employees)
			return tally, nil
		}
	}

	leaves, err := t.leaveRepo.GetApprovedOnDate(ctx, c.ID, today)
	if err != nil {
		return tally, err
	}

	records, err := t.attendanceRepo.GetByCompanyAndDate(ctx, c.ID, today)
	if err != nil {
		return tally, err
	}

	for _, emp := range employees {
		tag := attendance.TagAbsent
		if l, ok := leaves[emp.ID]; ok && l.CoversApproved(today) {
			tag = attendance.TagOnLeave
		}

		changed, err := t.ensureTag(ctx, c.ID, emp.ID, today, tag, records)
		if err != nil {
			slog.Error("Job: Failed to tag employee attendance",
				"company_id", c.ID,
				"employee_id", emp.ID,
				"tag", string(tag),
				"error", err)
			tally.errors++
			continue
		}
		if changed {
			tally.processed++
		} else {
			tally.skipped++
		}
	}

	return tally, nil
}

// ensureTag makes today's record for the employee carry tag unless a check-in exists.
// It reports whether anything was written.
func (t *Tagger) ensureTag(ctx context.Context, companyID, employeeID string, today time.Time, tag attendance.Tag, records map[string]attendance.Attendance) (bool, error) {
	existing, ok := records[employeeID]
	if !ok {
		_, inserted, err := t.attendanceRepo.InsertIfAbsent(ctx, attendance.Attendance{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Date:       today,
			Tag:        tag,
		})
		return inserted, err
	}

	if existing.HasCheckedIn() || existing.Tag == tag {
		return false, nil
	}
	return t.attendanceRepo.RetagIfNotCheckedIn(ctx, existing.ID, companyID, tag)
}
