package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/site"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrCompanyIDRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrServiceRoleRequired),
		errors.Is(err, auth.ErrManagerRoleRequired),
		errors.Is(err, auth.ErrEmployeeIDRequired):
		Forbidden(w, err.Error())

	// Attendance
	case errors.Is(err, attendance.ErrLocationUnavailable):
		UnprocessableEntity(w, "LOCATION_UNAVAILABLE", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Master data
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNotApproved):
		Forbidden(w, err.Error())
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")

	// Payroll
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordLocked):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		UnprocessableEntity(w, "INVALID_STATUS_TRANSITION", err.Error())

	// Jobs
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, err.Error())

	case database.IsInvalidInput(err):
		UnprocessableEntity(w, "INVALID_INPUT", "Request contains a malformed value")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
