package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a task that runs once per UTC day, on the first tick at or after Hour.
type Job struct {
	Name string
	Hour int
	Fn   func(ctx context.Context, now time.Time) error

	lastRun string
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs     []*Job
	interval time.Duration
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewScheduler creates a scheduler that checks for due jobs every interval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:     make([]*Job, 0),
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// AddDailyJob adds a job to the scheduler
func (s *Scheduler) AddDailyJob(name string, hour int, fn func(ctx context.Context, now time.Time) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, &Job{
		Name: name,
		Hour: hour,
		Fn:   fn,
	})
	slog.Info("Cron job registered", "name", name, "hour_utc", hour)
}

// Start begins the tick loop
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()

	slog.Info("Cron scheduler started", "job_count", len(s.jobs), "interval", s.interval)
}

// Stop gracefully stops the scheduler, waiting for a running job to return
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(s.ctx)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Tick(s.ctx)
		}
	}
}

// Tick runs every job that is due and has not yet run today. It returns the names of the jobs it ran.
func (s *Scheduler) Tick(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	today := now.Format("2006-01-02")

	var ran []string
	for _, job := range s.jobs {
		if ctx.Err() != nil {
			return ran
		}
		if now.Hour() < job.Hour || job.lastRun == today {
			continue
		}
		job.lastRun = today
		s.executeJob(ctx, job, now)
		ran = append(ran, job.Name)
	}
	return ran
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(ctx context.Context, job *Job, now time.Time) {
	start := time.Now()
	slog.Info("Cron job starting", "name", job.Name)

	if err := job.Fn(ctx, now); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Info("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once regardless of hour. It backs the api -run-once flag.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	for _, job := range s.jobs {
		s.executeJob(ctx, job, now)
	}
}
