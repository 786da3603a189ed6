package job

import (
	"context"
	"time"
)

// Runner is a daily batch routine. A returned error is fatal for the whole
// invocation; per-company and per-employee failures are counted in Summary.Errors.
type Runner interface {
	Name() string
	Run(ctx context.Context, now time.Time) (Summary, error)
}

// Service dispatches named jobs. Trigger returns ErrJobNotFound for unknown or
// disabled jobs; every other outcome is carried by the Summary.
type Service interface {
	Trigger(ctx context.Context, name string, now time.Time) (Summary, error)
	Enabled() []string
}
