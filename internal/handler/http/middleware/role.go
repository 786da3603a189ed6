package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-batch-go/internal/handler/http/response"
)

// RequireServiceRole only lets the batch scheduler credential through
func RequireServiceRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.IsService() {
			response.HandleError(w, auth.ErrServiceRoleRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManager requires manager or owner role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.CanManagePayroll() {
			response.HandleError(w, auth.ErrManagerRoleRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireEmployee requires an employee_id claim, which owners and managers may also carry
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || actor.IsService() || actor.EmployeeID == "" {
			response.HandleError(w, auth.ErrEmployeeIDRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
