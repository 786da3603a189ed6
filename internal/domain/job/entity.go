package job

import (
	"net/http"
	"time"
)

const (
	NameAttendanceTagger = "attendance-tagger"
	NamePayrollGenerator = "payroll-generator"
)

// Summary is the outcome of one batch invocation across all opted-in companies.
// Date is the run date in DEFAULT_TIMEZONE; a company with its own timezone
// may have processed the neighbouring day.
type Summary struct {
	Job       string `json:"job"`
	Date      string `json:"date"`
	Companies int    `json:"companies"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Errors    int    `json:"errors"`
	Fatal     bool   `json:"-"`
	Message   string `json:"message,omitempty"`
}

// StatusCode maps the summary to 200 (clean), 207 (partial) or 500 (fatal).
func (s Summary) StatusCode() int {
	switch {
	case s.Fatal:
		return http.StatusInternalServerError
	case s.Errors > 0:
		return http.StatusMultiStatus
	default:
		return http.StatusOK
	}
}

// Run is the persisted record of a Summary
type Run struct {
	ID         string
	Job        string
	RunDate    time.Time
	Companies  int
	Processed  int
	Skipped    int
	Errors     int
	StatusCode int
	Message    string
	StartedAt  time.Time
	FinishedAt time.Time
}
