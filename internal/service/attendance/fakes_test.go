package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/site"
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
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []company.Company
	for _, c := range f.companies {
		if c.IsActive && c.LiveAbsentEnabled {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompanies) ListLivePayroll(ctx context.Context) ([]company.Company, error) {
	return nil, nil
}

type fakeHolidays struct {
	holidays []company.Holiday
}

func (f *fakeHolidays) GetCovering(ctx context.Context, companyID string, date time.Time) ([]company.Holiday, error) {
	var out []company.Holiday
	for _, h := range f.holidays {
		if h.CompanyID == companyID && h.Covers(date) {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeEmployees struct {
	employees []employee.Employee
	failFor   map[string]bool // company IDs whose listing fails
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

type fakeLeaves struct {
	records []leave.LeaveRecord
}

func (f *fakeLeaves) GetApprovedOnDate(ctx context.Context, companyID string, date time.Time) (map[string]leave.LeaveRecord, error) {
	out := make(map[string]leave.LeaveRecord)
	for _, l := range f.records {
		if l.CompanyID == companyID && l.CoversApproved(date) {
			out[l.EmployeeID] = l
		}
	}
	return out, nil
}

type fakeSites struct {
	sites []site.Site
}

func (f *fakeSites) GetByID(ctx context.Context, id string, companyID string) (site.Site, error) {
	for _, s := range f.sites {
		if s.ID == id && s.CompanyID == companyID {
			return s, nil
		}
	}
	return site.Site{}, site.ErrSiteNotFound
}

// fakeAttendance is an in-memory store enforcing one record per (employee, date).
type fakeAttendance struct {
	records   []attendance.Attendance
	nextID    int
	insertErr map[string]error // employee ID -> error
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendance) find(employeeID string, date time.Time) int {
	for i, r := range f.records {
		if attendanceKey(r.EmployeeID, r.Date) == attendanceKey(employeeID, date) {
			return i
		}
	}
	return -1
}

func (f *fakeAttendance) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	if i := f.find(employeeID, date); i >= 0 && f.records[i].CompanyID == companyID {
		r := f.records[i]
		return &r, nil
	}
	return nil, nil
}

func (f *fakeAttendance) GetByCompanyAndDate(ctx context.Context, companyID string, date time.Time) (map[string]attendance.Attendance, error) {
	out := make(map[string]attendance.Attendance)
	for _, r := range f.records {
		if r.CompanyID == companyID && r.Date.Equal(date) {
			out[r.EmployeeID] = r
		}
	}
	return out, nil
}

func (f *fakeAttendance) InsertIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	if err := f.insertErr[att.EmployeeID]; err != nil {
		return attendance.Attendance{}, false, err
	}
	if f.find(att.EmployeeID, att.Date) >= 0 {
		return attendance.Attendance{}, false, nil
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records = append(f.records, att)
	return att, true, nil
}

func (f *fakeAttendance) RetagIfNotCheckedIn(ctx context.Context, id string, companyID string, tag attendance.Tag) (bool, error) {
	for i, r := range f.records {
		if r.ID == id && r.CompanyID == companyID && r.CheckInTime == nil {
			f.records[i].Tag = tag
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendance) RecordCheckIn(ctx context.Context, att attendance.Attendance) error {
	for i, r := range f.records {
		if r.ID == att.ID {
			if r.CheckInTime != nil {
				return attendance.ErrAlreadyCheckedIn
			}
			f.records[i].SiteID = att.SiteID
			f.records[i].Tag = att.Tag
			f.records[i].CheckInTime = att.CheckInTime
			f.records[i].CheckInLatitude = att.CheckInLatitude
			f.records[i].CheckInLongitude = att.CheckInLongitude
			return nil
		}
	}
	return attendance.ErrAlreadyCheckedIn
}

func (f *fakeAttendance) RecordCheckOut(ctx context.Context, att attendance.Attendance) error {
	for i, r := range f.records {
		if r.ID == att.ID {
			if r.CheckOutTime != nil {
				return attendance.ErrAlreadyCheckedOut
			}
			f.records[i].CheckOutTime = att.CheckOutTime
			f.records[i].CheckOutLatitude = att.CheckOutLatitude
			f.records[i].CheckOutLongitude = att.CheckOutLongitude
			return nil
		}
	}
	return attendance.ErrAlreadyCheckedOut
}

type fakeNotifier struct {
	sent []notification.CreateNotificationRequest
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, req notification.CreateNotificationRequest) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, req)
	return nil
}

func (f *fakeNotifier) NotifyBulk(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, r := range reqs {
		if err := f.Notify(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
