package site

import (
	"fmt"
	"time"
)

// Site is a check-in location with its configured daily window.
type Site struct {
	ID        string
	CompanyID string
	Name      string
	Latitude  float64
	Longitude float64
	CheckIn   string // "HH:MM" 24-hour
	CheckOut  string // "HH:MM" 24-hour
}

// CheckInMinutes returns the configured check-in time as minutes after midnight.
func (s Site) CheckInMinutes() (int, error) {
	return ParseClock(s.CheckIn)
}

// ParseClock parses an "HH:MM" or "HH:MM:SS" time of day into minutes after
// midnight. Seconds are dropped.
func ParseClock(value string) (int, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
}
