package auth

type Role string

const (
	RoleOwner       Role = "owner"        // Company owner - full access
	RoleManager     Role = "manager"      // Can adjust and publish payroll
	RoleEmployee    Role = "employee"     // Regular employee
	RoleServiceRole Role = "service_role" // Batch scheduler, bypasses company scoping
)

// Actor is the request-scoped identity derived from a verified token. It is
// passed explicitly into services instead of being looked up from context.
type Actor struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

// ActorFromClaims builds an Actor from JWT claims.
// IsAccessToken reports whether claims carry type=access. Other token types
// must not authorize requests.
func IsAccessToken(claims map[string]interface{}) bool {
	tokenType, ok := claims["type"].(string)
	return ok && tokenType == "access"
}

func ActorFromClaims(claims map[string]interface{}) (Actor, error) {
	role, _ := claims["role"].(string)
	if role == "" {
		return Actor{}, ErrInvalidToken
	}

	actor := Actor{Role: Role(role)}
	actor.UserID, _ = claims["user_id"].(string)
	actor.EmployeeID, _ = claims["employee_id"].(string)
	actor.CompanyID, _ = claims["company_id"].(string)

	if actor.Role != RoleServiceRole && actor.CompanyID == "" {
		return Actor{}, ErrCompanyIDRequired
	}

	return actor, nil
}

func (a Actor) IsService() bool {
	return a.Role == RoleServiceRole
}

func (a Actor) CanManagePayroll() bool {
	return a.Role == RoleOwner || a.Role == RoleManager
}
