package job

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	name    string
	summary job.Summary
	err     error
	calls   int
	gotNow  time.Time
	gotCtx  context.Context
}

func (r *stubRunner) Name() string { return r.name }

func (r *stubRunner) Run(ctx context.Context, now time.Time) (job.Summary, error) {
	r.calls++
	r.gotNow = now
	r.gotCtx = ctx
	return r.summary, r.err
}

type memoryRuns struct {
	runs []job.Run
	err  error
}

func (m *memoryRuns) Create(ctx context.Context, run *job.Run) error {
	if m.err != nil {
		return m.err
	}
	m.runs = append(m.runs, *run)
	return nil
}

type recordingAlerter struct {
	messages []string
}

func (a *recordingAlerter) Alert(ctx context.Context, message string) error {
	a.messages = append(a.messages, message)
	return nil
}

var triggerNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func TestTrigger_Success(t *testing.T) {
	tagger := &stubRunner{name: job.NameAttendanceTagger, summary: job.Summary{Companies: 2, Processed: 10}}
	runs := &memoryRuns{}
	alerts := &recordingAlerter{}
	svc := NewJobService([]job.Runner{tagger}, []string{job.NameAttendanceTagger}, runs, alerts, time.Minute)

	summary, err := svc.Trigger(context.Background(), job.NameAttendanceTagger, triggerNow)
	require.NoError(t, err)

	assert.Equal(t, 1, tagger.calls)
	assert.Equal(t, triggerNow, tagger.gotNow)
	_, hasDeadline := tagger.gotCtx.Deadline()
	assert.True(t, hasDeadline)

	assert.Equal(t, job.NameAttendanceTagger, summary.Job)
	assert.Equal(t, "2025-03-10", summary.Date)
	assert.Equal(t, http.StatusOK, summary.StatusCode())

	require.Len(t, runs.runs, 1)
	assert.Equal(t, http.StatusOK, runs.runs[0].StatusCode)
	assert.Equal(t, 10, runs.runs[0].Processed)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), runs.runs[0].RunDate)
	assert.Empty(t, alerts.messages)
}

func TestTrigger_UnknownOrDisabled(t *testing.T) {
	tagger := &stubRunner{name: job.NameAttendanceTagger}
	generator := &stubRunner{name: job.NamePayrollGenerator}
	svc := NewJobService([]job.Runner{tagger, generator}, []string{job.NameAttendanceTagger, "nightly-report"}, nil, nil, 0)

	assert.Equal(t, []string{job.NameAttendanceTagger}, svc.Enabled())

	_, err := svc.Trigger(context.Background(), job.NamePayrollGenerator, triggerNow)
	assert.ErrorIs(t, err, job.ErrJobNotFound)
	_, err = svc.Trigger(context.Background(), "nightly-report", triggerNow)
	assert.ErrorIs(t, err, job.ErrJobNotFound)
	assert.Zero(t, generator.calls)
}

func TestTrigger_PartialFailureAlerts(t *testing.T) {
	generator := &stubRunner{name: job.NamePayrollGenerator, summary: job.Summary{Date: "2025-03-10", Companies: 3, Processed: 20, Errors: 2}}
	runs := &memoryRuns{}
	alerts := &recordingAlerter{}
	svc := NewJobService([]job.Runner{generator}, []string{job.NamePayrollGenerator}, runs, alerts, 0)

	summary, err := svc.Trigger(context.Background(), job.NamePayrollGenerator, triggerNow)
	require.NoError(t, err)

	assert.Equal(t, http.StatusMultiStatus, summary.StatusCode())
	require.Len(t, alerts.messages, 1)
	assert.Contains(t, alerts.messages[0], "status 207")
	assert.Contains(t, alerts.messages[0], "errors=2")
	assert.Equal(t, http.StatusMultiStatus, runs.runs[0].StatusCode)
}

func TestTrigger_FatalRunner(t *testing.T) {
	generator := &stubRunner{name: job.NamePayrollGenerator, err: errors.New("connection refused")}
	runs := &memoryRuns{}
	alerts := &recordingAlerter{}
	svc := NewJobService([]job.Runner{generator}, []string{job.NamePayrollGenerator}, runs, alerts, 0)

	summary, err := svc.Trigger(context.Background(), job.NamePayrollGenerator, triggerNow)
	require.NoError(t, err)

	assert.True(t, summary.Fatal)
	assert.Equal(t, "connection refused", summary.Message)
	assert.Equal(t, http.StatusInternalServerError, summary.StatusCode())
	require.Len(t, runs.runs, 1)
	assert.Equal(t, "connection refused", runs.runs[0].Message)
	assert.Len(t, alerts.messages, 1)
}

func TestTrigger_RecordsAfterCancellation(t *testing.T) {
	tagger := &stubRunner{name: job.NameAttendanceTagger, err: context.Canceled}
	runs := &memoryRuns{}
	svc := NewJobService([]job.Runner{tagger}, []string{job.NameAttendanceTagger}, runs, nil, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := svc.Trigger(ctx, job.NameAttendanceTagger, triggerNow)
	require.NoError(t, err)
	assert.True(t, summary.Fatal)
	assert.Len(t, runs.runs, 1)
}

func TestTrigger_RunHistoryFailureIsIgnored(t *testing.T) {
	tagger := &stubRunner{name: job.NameAttendanceTagger, summary: job.Summary{Processed: 1}}
	svc := NewJobService([]job.Runner{tagger}, []string{job.NameAttendanceTagger}, &memoryRuns{err: errors.New("disk full")}, nil, 0)

	summary, err := svc.Trigger(context.Background(), job.NameAttendanceTagger, triggerNow)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, summary.StatusCode())
}

func TestTrigger_RunDateFollowsSummaryDate(t *testing.T) {
	tagger := &stubRunner{name: job.NameAttendanceTagger, summary: job.Summary{Date: "2025-03-11", Processed: 1}}
	runs := &memoryRuns{}
	svc := NewJobService([]job.Runner{tagger}, []string{job.NameAttendanceTagger}, runs, nil, 0)

	// 20:00 UTC on the 10th is already the 11th in the default timezone
	_, err := svc.Trigger(context.Background(), job.NameAttendanceTagger, time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), runs.runs[0].RunDate)
}
