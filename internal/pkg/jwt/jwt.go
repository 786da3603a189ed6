package jwt

import (
	"time"

	"github.com/cmlabs-hris/hris-batch-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(actor auth.Actor, ttl time.Duration) (token string, expiresAt int64, err error)
	GenerateServiceToken() (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	serviceTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	now                        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, serviceTokenExpirationTime string) Service {
	return &JWTService{
		serviceTokenExpirationTime: serviceTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                        time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(actor auth.Actor, ttl time.Duration) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(ttl).Unix()

	claims := map[string]interface{}{
		"user_id":     actor.UserID,
		"employee_id": valueOrNil(actor.EmployeeID),
		"company_id":  valueOrNil(actor.CompanyID),
		"role":        string(actor.Role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// GenerateServiceToken issues the long-lived credential used by the external scheduler.
func (j *JWTService) GenerateServiceToken() (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.serviceTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	return j.GenerateAccessToken(auth.Actor{UserID: "scheduler", Role: auth.RoleServiceRole}, expDuration)
}

func valueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
