package attendance

import (
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// Coordinates are pointers so a missing geolocation fix can be told apart from (0, 0).
type CheckInRequest struct {
	SiteID    string   `json:"site_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	if r.Latitude == nil || r.Longitude == nil {
		return ErrLocationUnavailable
	}

	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id is required",
		})
	} else if !validator.IsValidUUID(r.SiteID) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id must be a valid UUID",
		})
	}
	errs = append(errs, validateCoordinates(*r.Latitude, *r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	if r.Latitude == nil || r.Longitude == nil {
		return ErrLocationUnavailable
	}

	if errs := validateCoordinates(*r.Latitude, *r.Longitude); len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCoordinates(lat, lon float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if lat < -90 || lat > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if lon < -180 || lon > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	return errs
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	SiteID            *string  `json:"site_id,omitempty"`
	Date              string   `json:"date"`
	Tag               Tag      `json:"tag"`
	CheckInTime       *string  `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	DistanceMeters    *float64 `json:"distance_meters,omitempty"`
}
