package job

import "errors"

var (
	ErrJobNotFound   = errors.New("job not found or not enabled")
	ErrListCompanies = errors.New("failed to list companies")
)
