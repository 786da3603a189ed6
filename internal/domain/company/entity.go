package company

import (
	"strings"
	"time"
)

type Company struct {
	ID                   string
	Name                 string
	LiveAbsentEnabled    bool
	LivePayrollEnabled   bool
	PayrollGenerationDay *int
	FiscalYearStart      *time.Time
	WeeklyHolidays       []string // weekday names, e.g. "Saturday", "Sunday"
	Timezone             *string
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Holiday is an ad-hoc, company-wide non-working date range (inclusive).
type Holiday struct {
	ID        string
	CompanyID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// IsWeeklyHoliday reports whether the weekday of date is configured as a
// weekly non-working day. Names match case-insensitively.
func (c Company) IsWeeklyHoliday(date time.Time) bool {
	weekday := date.Weekday().String()
	for _, day := range c.WeeklyHolidays {
		if strings.EqualFold(strings.TrimSpace(day), weekday) {
			return true
		}
	}
	return false
}

// Location resolves the company timezone, falling back to def when unset or invalid.
func (c Company) Location(def *time.Location) *time.Location {
	if c.Timezone == nil || *c.Timezone == "" {
		return def
	}
	loc, err := time.LoadLocation(*c.Timezone)
	if err != nil {
		return def
	}
	return loc
}

// IsPayrollDay reports whether date is the company's payroll generation day.
// A generation day past the end of a short month falls on its last day.
func (c Company) IsPayrollDay(date time.Time) bool {
	if c.PayrollGenerationDay == nil {
		return false
	}
	day := *c.PayrollGenerationDay
	if date.Day() == day {
		return true
	}
	lastDay := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
	return day > lastDay && date.Day() == lastDay
}

// Covers reports whether the holiday range includes the calendar date of day.
func (h Holiday) Covers(day time.Time) bool {
	d := civilDate(day)
	return !d.Before(civilDate(h.StartDate)) && !d.After(civilDate(h.EndDate))
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
