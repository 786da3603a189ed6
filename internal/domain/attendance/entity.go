package attendance

import (
	"time"
)

// Tag classifies an attendance record.
type Tag string

const (
	TagPresent       Tag = "Present"
	TagLate          Tag = "Late"
	TagWrongLocation Tag = "Wrong_Location"
	TagAbsent        Tag = "Absent"
	TagOnLeave       Tag = "On_Leave"
	TagPending       Tag = "Pending"
)

func (t Tag) Valid() bool {
	switch t {
	case TagPresent, TagLate, TagWrongLocation, TagAbsent, TagOnLeave, TagPending:
		return true
	}
	return false
}

// Attendance is the single record of an employee for a calendar date.
type Attendance struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	SiteID            *string
	Date              time.Time
	Tag               Tag
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasCheckedIn reports whether a check-in was recorded.
func (a Attendance) HasCheckedIn() bool {
	return a.CheckInTime != nil
}
