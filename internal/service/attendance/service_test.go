package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/site"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hq = site.Site{ID: "5f0c2a8e-7b1d-4c3e-9a6f-2d8b4e1c7a30", CompanyID: "company-a", Name: "HQ", Latitude: -6.175392, Longitude: 106.827153, CheckIn: "08:00", CheckOut: "17:00"}

type checkInFixture struct {
	attendance *fakeAttendance
	notifier   *fakeNotifier
	svc        *AttendanceServiceImpl
	clock      time.Time
}

func newCheckInFixture() *checkInFixture {
	supervisor := "emp-boss"
	f := &checkInFixture{
		attendance: &fakeAttendance{insertErr: map[string]error{}},
		notifier:   &fakeNotifier{},
	}
	wib := time.FixedZone("WIB", 7*3600)
	svc := NewAttendanceService(
		&fakeCompanies{companies: []company.Company{liveCompany("company-a")}},
		&fakeEmployees{employees: []employee.Employee{
			{ID: "emp-1", CompanyID: "company-a", SupervisorID: &supervisor, FullName: "Budi", Status: employee.StatusApproved},
			{ID: "emp-new", CompanyID: "company-a", FullName: "Sari", Status: employee.StatusPending},
		}},
		&fakeSites{sites: []site.Site{hq}},
		f.attendance,
		f.notifier,
		Config{DefaultLocation: wib},
	).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc
	f.clock = time.Date(2025, 3, 10, 8, 0, 0, 0, wib)
	return f
}

func employeeActor() auth.Actor {
	return auth.Actor{UserID: "user-1", EmployeeID: "emp-1", CompanyID: "company-a", Role: auth.RoleEmployee}
}

func checkInAt(distance float64) attendance.CheckInRequest {
	p := metersNorth(geo.Point{Latitude: hq.Latitude, Longitude: hq.Longitude}, distance)
	return attendance.CheckInRequest{SiteID: hq.ID, Latitude: &p.Latitude, Longitude: &p.Longitude}
}

func TestCheckIn_EndToEndTags(t *testing.T) {
	cases := []struct {
		name     string
		late     time.Duration
		distance float64
		want     attendance.Tag
	}{
		{"on time at 50m", 0, 50, attendance.TagPresent},
		{"ten minutes late at 50m", 10 * time.Minute, 50, attendance.TagLate},
		{"on time at 500m", 0, 500, attendance.TagWrongLocation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckInFixture()
			f.clock = f.clock.Add(tc.late)

			resp, err := f.svc.CheckIn(context.Background(), employeeActor(), checkInAt(tc.distance))
			require.NoError(t, err)

			assert.Equal(t, tc.want, resp.Tag)
			assert.Equal(t, "2025-03-10", resp.Date)
			require.NotNil(t, resp.CheckInTime)
			require.NotNil(t, resp.DistanceMeters)
			assert.InDelta(t, tc.distance, *resp.DistanceMeters, 0.5)

			require.Len(t, f.attendance.records, 1)
			assert.Equal(t, tc.want, f.attendance.records[0].Tag)

			require.Len(t, f.notifier.sent, 1)
			assert.Equal(t, "emp-boss", f.notifier.sent[0].RecipientID)
			assert.Equal(t, notification.TypeAttendanceCheckIn, f.notifier.sent[0].Type)
		})
	}
}

func TestCheckIn_MissingLocation(t *testing.T) {
	f := newCheckInFixture()
	lat := -6.175392

	_, err := f.svc.CheckIn(context.Background(), employeeActor(), attendance.CheckInRequest{SiteID: hq.ID, Latitude: &lat})
	assert.ErrorIs(t, err, attendance.ErrLocationUnavailable)
	assert.Empty(t, f.attendance.records, "no partial record is written")
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	f := newCheckInFixture()

	_, err := f.svc.CheckIn(context.Background(), employeeActor(), checkInAt(10))
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), employeeActor(), checkInAt(10))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, f.attendance.records, 1)
}

func TestCheckIn_OnLeaveDayRecordsTheCheckIn(t *testing.T) {
	f := newCheckInFixture()
	f.attendance.records = []attendance.Attendance{
		{ID: "att-leave", EmployeeID: "emp-1", CompanyID: "company-a", Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Tag: attendance.TagOnLeave},
	}

	resp, err := f.svc.CheckIn(context.Background(), employeeActor(), checkInAt(20))
	require.NoError(t, err)

	assert.Equal(t, "att-leave", resp.ID)
	assert.Equal(t, attendance.TagPresent, resp.Tag)
	require.Len(t, f.attendance.records, 1)
	assert.Equal(t, attendance.TagPresent, f.attendance.records[0].Tag)
	require.Len(t, f.notifier.sent, 1)
}

func TestCheckIn_UpdatesTaggerRecordWithoutCheckIn(t *testing.T) {
	f := newCheckInFixture()
	f.attendance.records = []attendance.Attendance{
		{ID: "att-absent", EmployeeID: "emp-1", CompanyID: "company-a", Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Tag: attendance.TagAbsent},
	}
	f.clock = f.clock.Add(2 * time.Hour)

	resp, err := f.svc.CheckIn(context.Background(), employeeActor(), checkInAt(20))
	require.NoError(t, err)

	assert.Equal(t, "att-absent", resp.ID)
	require.Len(t, f.attendance.records, 1)
	assert.Equal(t, attendance.TagLate, f.attendance.records[0].Tag)
	assert.NotNil(t, f.attendance.records[0].CheckInTime)
}

func TestCheckIn_NotificationFailureDoesNotFail(t *testing.T) {
	f := newCheckInFixture()
	f.notifier.err = errBoom

	resp, err := f.svc.CheckIn(context.Background(), employeeActor(), checkInAt(10))
	require.NoError(t, err)
	assert.Equal(t, attendance.TagPresent, resp.Tag)
	assert.Len(t, f.attendance.records, 1)
}

func TestCheckIn_Preconditions(t *testing.T) {
	f := newCheckInFixture()

	_, err := f.svc.CheckIn(context.Background(), auth.Actor{CompanyID: "company-a", Role: auth.RoleOwner}, checkInAt(0))
	assert.ErrorIs(t, err, auth.ErrEmployeeIDRequired)

	pending := employeeActor()
	pending.EmployeeID = "emp-new"
	_, err = f.svc.CheckIn(context.Background(), pending, checkInAt(0))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotApproved)

	req := checkInAt(0)
	req.SiteID = "site-elsewhere"
	_, err = f.svc.CheckIn(context.Background(), employeeActor(), req)
	assert.ErrorIs(t, err, site.ErrSiteNotFound)

	assert.Empty(t, f.attendance.records)
}

func TestCheckOut(t *testing.T) {
	f := newCheckInFixture()
	out := metersNorth(geo.Point{Latitude: hq.Latitude, Longitude: hq.Longitude}, 30)
	req := attendance.CheckOutRequest{Latitude: &out.Latitude, Longitude: &out.Longitude}

	_, err := f.svc.CheckOut(context.Background(), employeeActor(), req)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = f.svc.CheckIn(context.Background(), employeeActor(), checkInAt(10))
	require.NoError(t, err)

	f.clock = f.clock.Add(9 * time.Hour)
	resp, err := f.svc.CheckOut(context.Background(), employeeActor(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, attendance.TagPresent, resp.Tag)
	require.NotNil(t, resp.DistanceMeters)
	assert.InDelta(t, 30, *resp.DistanceMeters, 0.5)

	_, err = f.svc.CheckOut(context.Background(), employeeActor(), req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	_, err = f.svc.CheckOut(context.Background(), employeeActor(), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrLocationUnavailable)
}
