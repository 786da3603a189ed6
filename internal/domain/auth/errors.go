package auth

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrServiceRoleRequired = errors.New("service role credential required")
	ErrCompanyIDRequired   = errors.New("company_id claim is required")
	ErrEmployeeIDRequired  = errors.New("employee_id claim is required")
	ErrManagerRoleRequired = errors.New("owner or manager role required")
)
