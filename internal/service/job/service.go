package job

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/job"
	"github.com/cmlabs-hris/hris-batch-go/internal/pkg/alert"
)

type JobServiceImpl struct {
	runners map[string]job.Runner
	enabled []string
	runRepo job.RunRepository
	alerter alert.Alerter
	timeout time.Duration
	clock   func() time.Time
}

// NewJobService registers runners and exposes those named in enabled.
// A nil runRepo skips run history, a nil alerter skips alerts.
func NewJobService(runners []job.Runner, enabled []string, runRepo job.RunRepository, alerter alert.Alerter, timeout time.Duration) job.Service {
	byName := make(map[string]job.Runner, len(runners))
	for _, r := range runners {
		byName[r.Name()] = r
	}

	var exposed []string
	for _, name := range enabled {
		if _, ok := byName[name]; ok {
			exposed = append(exposed, name)
		} else {
			slog.Warn("Ignoring unknown job in enabled list", "job", name)
		}
	}

	if alerter == nil {
		alerter = alert.Nop{}
	}

	return &JobServiceImpl{
		runners: byName,
		enabled: exposed,
		runRepo: runRepo,
		alerter: alerter,
		timeout: timeout,
		clock:   time.Now,
	}
}

// Enabled implements job.Service.
func (s *JobServiceImpl) Enabled() []string {
	return append([]string(nil), s.enabled...)
}

// Trigger implements job.Service.
func (s *JobServiceImpl) Trigger(ctx context.Context, name string, now time.Time) (job.Summary, error) {
	runner, ok := s.lookup(name)
	if !ok {
		return job.Summary{}, fmt.Errorf("%w: %s", job.ErrJobNotFound, name)
	}

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	startedAt := s.clock()
	summary, err := runner.Run(runCtx, now)
	finishedAt := s.clock()

	summary.Job = name
	if summary.Date == "" {
		summary.Date = now.UTC().Format("2006-01-02")
	}
	if err != nil {
		summary.Fatal = true
		summary.Message = err.Error()
		slog.Error("Job: Run failed", "job", name, "error", err)
	}

	// Bookkeeping must outlive a cancelled or timed out request.
	detached := context.WithoutCancel(ctx)
	s.record(detached, summary, now, startedAt, finishedAt)
	if summary.StatusCode() != http.StatusOK {
		s.alert(detached, summary)
	}

	return summary, nil
}

func (s *JobServiceImpl) lookup(name string) (job.Runner, bool) {
	for _, n := range s.enabled {
		if n == name {
			return s.runners[name], true
		}
	}
	return nil, false
}

func (s *JobServiceImpl) record(ctx context.Context, summary job.Summary, now, startedAt, finishedAt time.Time) {
	if s.runRepo == nil {
		return
	}
	run := &job.Run{
		Job:        summary.Job,
		RunDate:    runDate(summary.Date, now),
		Companies:  summary.Companies,
		Processed:  summary.Processed,
		Skipped:    summary.Skipped,
		Errors:     summary.Errors,
		StatusCode: summary.StatusCode(),
		Message:    summary.Message,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		slog.Warn("Failed to record job run", "job", summary.Job, "error", err)
	}
}

func (s *JobServiceImpl) alert(ctx context.Context, summary job.Summary) {
	msg := fmt.Sprintf(":warning: %s %s finished with status %d: companies=%d processed=%d skipped=%d errors=%d",
		summary.Job, summary.Date, summary.StatusCode(),
		summary.Companies, summary.Processed, summary.Skipped, summary.Errors)
	if summary.Message != "" {
		msg += "\n" + summary.Message
	}
	if err := s.alerter.Alert(ctx, msg); err != nil {
		slog.Warn("Failed to send job alert", "job", summary.Job, "error", err)
	}
}

// runDate is the runner's reported date, which is local to DEFAULT_TIMEZONE.
func runDate(date string, now time.Time) time.Time {
	if d, err := time.Parse("2006-01-02", date); err == nil {
		return d
	}
	return now.UTC().Truncate(24 * time.Hour)
}
