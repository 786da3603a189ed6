package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrLocationUnavailable = errors.New("location is unavailable, allow location access to check in or out")
	ErrAlreadyCheckedIn    = errors.New("you have already checked in today")
	ErrNotCheckedIn        = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut   = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
