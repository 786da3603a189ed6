package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/grade"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/payroll"
)

var errBoom = errors.New("boom")

type fakeCompanies struct {
	companies []company.Company
	listErr   error
}

func (f *fakeCompanies) GetByID(ctx context.Context, id string) (company.Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (f *fakeCompanies) ListLiveAbsent(ctx context.Context) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanies) ListLivePayroll(ctx context.Context) ([]company.Company, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []company.Company
	for _, c := range f.companies {
		if c.IsActive && c.LivePayrollEnabled {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeEmployees struct {
	employees []employee.Employee
	failFor   map[string]bool
}

func (f *fakeEmployees) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployees) GetApprovedByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.failFor[companyID] {
		return nil, errBoom
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.Status == employee.StatusApproved {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeGrades struct {
	grades []grade.Grade
}

func (f *fakeGrades) GetByID(ctx context.Context, id string, companyID string) (grade.Grade, error) {
	for _, g := range f.grades {
		if g.ID == id && g.CompanyID == companyID {
			return g, nil
		}
	}
	return grade.Grade{}, grade.ErrGradeNotFound
}

func (f *fakeGrades) GetByCompanyID(ctx context.Context, companyID string) ([]grade.Grade, error) {
	var out []grade.Grade
	for _, g := range f.grades {
		if g.CompanyID == companyID {
			out = append(out, g)
		}
	}
	return out, nil
}

// fakePayroll mirrors the upsert rules of the postgres repository.
type fakePayroll struct {
	records   []payroll.PayrollRecord
	nextID    int
	upsertErr map[string]error // employee ID -> error
}

func (f *fakePayroll) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	if err := f.upsertErr[record.EmployeeID]; err != nil {
		return payroll.PayrollRecord{}, false, err
	}
	for i, r := range f.records {
		if r.EmployeeID == record.EmployeeID && r.GenerationDate.Equal(record.GenerationDate) {
			if r.Status != payroll.PayrollStatusPending {
				return payroll.PayrollRecord{}, false, payroll.ErrPayrollRecordLocked
			}
			f.records[i].BasicSalary = record.BasicSalary
			f.records[i].Recompute()
			return f.records[i], false, nil
		}
	}
	f.nextID++
	record.ID = fmt.Sprintf("pay-%d", f.nextID)
	f.records = append(f.records, record)
	return record, true, nil
}

func (f *fakePayroll) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	for _, r := range f.records {
		if r.ID == id && r.CompanyID == companyID {
			r.Adjustments = append([]payroll.Adjustment(nil), r.Adjustments...)
			return r, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayroll) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	return f.GetByID(ctx, id, companyID)
}

func (f *fakePayroll) UpdateAdjustments(ctx context.Context, record payroll.PayrollRecord) error {
	for i, r := range f.records {
		if r.ID == record.ID && r.CompanyID == record.CompanyID {
			if r.Status != payroll.PayrollStatusPending {
				return payroll.ErrPayrollRecordLocked
			}
			f.records[i].Adjustments = record.Adjustments
			f.records[i].TotalAmount = record.TotalAmount
			return nil
		}
	}
	return payroll.ErrPayrollRecordNotFound
}

func (f *fakePayroll) UpdateStatus(ctx context.Context, id string, companyID string, from, to payroll.PayrollStatus) error {
	for i, r := range f.records {
		if r.ID == id && r.CompanyID == companyID {
			if r.Status != from {
				return payroll.ErrInvalidStatusTransition
			}
			f.records[i].Status = to
			return nil
		}
	}
	return payroll.ErrPayrollRecordNotFound
}

type fakeNotifier struct {
	sent      []notification.CreateNotificationRequest
	bulkCalls int
	err       error
}

func (f *fakeNotifier) Notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, req)
	return nil
}

func (f *fakeNotifier) NotifyBulk(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	f.bulkCalls++
	for _, r := range reqs {
		if err := f.Notify(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// fakeTransactor runs fn inline and counts calls.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
