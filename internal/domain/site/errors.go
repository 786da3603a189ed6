package site

import "errors"

var (
	ErrSiteNotFound = errors.New("site not found")
	ErrInvalidClock = errors.New("invalid time of day")
)
