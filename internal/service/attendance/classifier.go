package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-batch-go/internal/domain/site"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/geo"
)

// DefaultCheckInRadiusMeters is the allowed distance from a site for an in-range check-in.
const DefaultCheckInRadiusMeters = 100

type Classification struct {
	Tag            attendance.Tag
	OnTime         bool
	WithinRange    bool
	DistanceMeters float64
}

// TagFor maps the two check-in predicates to a tag. Out of range wins over lateness.
func TagFor(onTime, withinRange bool) attendance.Tag {
	switch {
	case !withinRange:
		return attendance.TagWrongLocation
	case onTime:
		return attendance.TagPresent
	default:
		return attendance.TagLate
	}
}

// Classify tags a check-in made at nowLocal (already in the company timezone) from
// current against s. Times compare at minute granularity and both bounds are inclusive.
func Classify(nowLocal time.Time, s site.Site, current geo.Point, radiusMeters float64) (Classification, error) {
	checkIn, err := s.CheckInMinutes()
	if err != nil {
		return Classification{}, err
	}

	onTime := nowLocal.Hour()*60+nowLocal.Minute() <= checkIn
	distance, within := geo.WithinRadius(geo.Point{Latitude: s.Latitude, Longitude: s.Longitude}, current, radiusMeters)

	return Classification{
		Tag:            TagFor(onTime, within),
		OnTime:         onTime,
		WithinRange:    within,
		DistanceMeters: distance,
	}, nil
}
