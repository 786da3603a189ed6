package app

import (
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/config"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hris-batch-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/alert"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-batch-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-batch-go/internal/service/attendance"
	jobService "github.com/cmlabs-hris/hris-batch-go/internal/service/job"
	notificationService "github.com/cmlabs-hris/hris-batch-go/internal/service/notification"
	payrollService "github.com/cmlabs-hris/hris-batch-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

// App holds the services shared by the HTTP server and the Lambda entry point.
type App struct {
	JWT        jwt.Service
	Attendance attendance.AttendanceService
	Payroll    payroll.PayrollService
	Jobs       job.Service
}

func New(cfg *config.Config, db *database.DB) (*App, error) {
	loc, err := time.LoadLocation(cfg.App.DefaultTimezone)
	if err != nil {
		return nil, err
	}

	companyRepo := postgresql.NewCompanyRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	gradeRepo := postgresql.NewGradeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	jobRunRepo := postgresql.NewJobRunRepository(db)

	notificationSvc := notificationService.NewNotificationService(notificationRepo)

	attendanceSvc := attendanceService.NewAttendanceService(
		companyRepo,
		employeeRepo,
		siteRepo,
		attendanceRepo,
		notificationSvc,
		attendanceService.Config{
			CheckInRadiusMeters: cfg.Attendance.CheckInRadiusMeters,
			DefaultLocation:     loc,
		},
	)
	payrollSvc := payrollService.NewPayrollService(postgresql.NewTransactor(db), payrollRepo, notificationSvc)

	runners := []job.Runner{
		attendanceService.NewTagger(companyRepo, holidayRepo, employeeRepo, leaveRepo, attendanceRepo, loc),
		payrollService.NewGenerator(companyRepo, employeeRepo, gradeRepo, payrollRepo, notificationSvc, loc),
	}
	jobSvc := jobService.NewJobService(
		runners,
		cfg.Scheduler.JobsEnabled,
		jobRunRepo,
		alert.NewSlack(cfg.Slack.BotToken, cfg.Slack.AlertChannelID),
		cfg.Scheduler.JobTimeout,
	)

	return &App{
		JWT:        jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.ServiceExpiration),
		Attendance: attendanceSvc,
		Payroll:    payrollSvc,
		Jobs:       jobSvc,
	}, nil
}

func (a *App) Router(cfg appHTTP.RouterConfig) *chi.Mux {
	return appHTTP.NewRouter(
		cfg,
		a.JWT,
		appHTTP.NewAttendanceHandler(a.Attendance),
		appHTTP.NewPayrollHandler(a.Payroll),
		appHTTP.NewJobHandler(a.Jobs),
	)
}
