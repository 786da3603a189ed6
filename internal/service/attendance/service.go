package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/site"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/geo"
)

type Config struct {
	CheckInRadiusMeters float64
	DefaultLocation     *time.Location
}

type AttendanceServiceImpl struct {
	companyRepo     company.CompanyRepository
	employeeRepo    employee.EmployeeRepository
	siteRepo        site.SiteRepository
	attendanceRepo  attendance.AttendanceRepository
	notificationSvc notification.Service
	config          Config
	now             func() time.Time
}

func NewAttendanceService(
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	siteRepo site.SiteRepository,
	attendanceRepo attendance.AttendanceRepository,
	notificationSvc notification.Service,
	cfg Config,
) attendance.AttendanceService {
	if cfg.CheckInRadiusMeters <= 0 {
		cfg.CheckInRadiusMeters = DefaultCheckInRadiusMeters
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.UTC
	}
	return &AttendanceServiceImpl{
		companyRepo:     companyRepo,
		employeeRepo:    employeeRepo,
		siteRepo:        siteRepo,
		attendanceRepo:  attendanceRepo,
		notificationSvc: notificationSvc,
		config:          cfg,
		now:             time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func toResponse(att attendance.Attendance, distance *float64) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		SiteID:            att.SiteID,
		Date:              att.Date.Format("2006-01-02"),
		Tag:               att.Tag,
		CheckInTime:       timePtrToString(att.CheckInTime),
		CheckOutTime:      timePtrToString(att.CheckOutTime),
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		DistanceMeters:    distance,
	}
}

// localToday resolves the caller's company clock and returns the local time and its civil date.
func (a *AttendanceServiceImpl) localToday(ctx context.Context, companyID string) (time.Time, time.Time, error) {
	c, err := a.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	nowLocal := a.now().In(c.Location(a.config.DefaultLocation))
	return nowLocal, civilDate(nowLocal), nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, actor auth.Actor, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if actor.EmployeeID == "" {
		return attendance.AttendanceResponse{}, auth.ErrEmployeeIDRequired
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if emp.Status != employee.StatusApproved {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotApproved
	}

	s, err := a.siteRepo.GetByID(ctx, req.SiteID, actor.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal, today, err := a.localToday(ctx, actor.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	result, err := Classify(nowLocal, s, geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}, a.config.CheckInRadiusMeters)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("site %s has an invalid check-in time: %w", s.ID, err)
	}

	existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, today, actor.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil && existing.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	checkInTime := nowLocal.UTC()
	att := attendance.Attendance{
		EmployeeID:       emp.ID,
		CompanyID:        actor.CompanyID,
		SiteID:           &s.ID,
		Date:             today,
		Tag:              result.Tag,
		CheckInTime:      &checkInTime,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
	}

	if existing == nil {
		created, inserted, err := a.attendanceRepo.InsertIfAbsent(ctx, att)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if inserted {
			a.notifySupervisor(ctx, emp, created, notification.TypeAttendanceCheckIn)
			return toResponse(created, &result.DistanceMeters), nil
		}

		// Another writer created today's row between the read and the insert.
		existing, err = a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, today, actor.CompanyID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if existing == nil {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
	}

	att.ID = existing.ID
	att.CreatedAt = existing.CreatedAt
	if err := a.attendanceRepo.RecordCheckIn(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.notifySupervisor(ctx, emp, att, notification.TypeAttendanceCheckIn)
	return toResponse(att, &result.DistanceMeters), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, actor auth.Actor, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if actor.EmployeeID == "" {
		return attendance.AttendanceResponse{}, auth.ErrEmployeeIDRequired
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal, today, err := a.localToday(ctx, actor.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, today, actor.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing == nil || !existing.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOutTime := nowLocal.UTC()
	att := *existing
	att.CheckOutTime = &checkOutTime
	att.CheckOutLatitude = req.Latitude
	att.CheckOutLongitude = req.Longitude

	if err := a.attendanceRepo.RecordCheckOut(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.notifySupervisor(ctx, emp, att, notification.TypeAttendanceCheckOut)

	var distance *float64
	if att.SiteID != nil {
		if s, err := a.siteRepo.GetByID(ctx, *att.SiteID, actor.CompanyID); err == nil {
			d := geo.Distance(geo.Point{Latitude: s.Latitude, Longitude: s.Longitude}, geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude})
			distance = &d
		}
	}
	return toResponse(att, distance), nil
}

// notifySupervisor is best effort: failures are logged and never undo the attendance write.
func (a *AttendanceServiceImpl) notifySupervisor(ctx context.Context, emp employee.Employee, att attendance.Attendance, notifType notification.NotificationType) {
	if a.notificationSvc == nil || emp.SupervisorID == nil || *emp.SupervisorID == "" {
		return
	}

	title := "Employee checked in"
	message := fmt.Sprintf("%s checked in (%s)", emp.FullName, att.Tag)
	if notifType == notification.TypeAttendanceCheckOut {
		title = "Employee checked out"
		message = fmt.Sprintf("%s checked out", emp.FullName)
	}

	err := a.notificationSvc.Notify(ctx, notification.CreateNotificationRequest{
		CompanyID:   emp.CompanyID,
		RecipientID: *emp.SupervisorID,
		SenderID:    &emp.ID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"attendance_id": att.ID,
			"date":          att.Date.Format("2006-01-02"),
			"tag":           string(att.Tag),
		},
	})
	if err != nil {
		slog.Warn("Failed to notify supervisor", "employee_id", emp.ID, "attendance_id", att.ID, "error", err)
	}
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
