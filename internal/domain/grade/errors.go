package grade

import "errors"

var (
	ErrGradeNotFound = errors.New("grade not found")
)
