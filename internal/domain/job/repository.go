package job

import "context"

type RunRepository interface {
	Create(ctx context.Context, run *Run) error
}
